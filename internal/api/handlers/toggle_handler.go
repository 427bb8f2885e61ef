package handlers

import (
	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/internal/api/presenters"
	"github.com/fxckultimv/foodgram-project-react/internal/middleware"
	"github.com/fxckultimv/foodgram-project-react/pkg/toggle"
	"github.com/gofiber/fiber/v2"
)

type (
	ToggleHandler interface {
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToCart(c *fiber.Ctx) error
		RemoveFromCart(c *fiber.Ctx) error
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
	}

	toggleHandler struct {
		toggleService toggle.ToggleService
	}

	toggleMessages struct {
		success string
		failed  string
	}
)

func NewToggleHandler(toggleService toggle.ToggleService) ToggleHandler {
	return &toggleHandler{
		toggleService: toggleService,
	}
}

func (h *toggleHandler) AddFavorite(c *fiber.Ctx) error {
	return h.add(c, domain.ToggleFavorite, toggleMessages{domain.MessageSuccessAddFavorite, domain.MessageFailedAddFavorite})
}

func (h *toggleHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.remove(c, domain.ToggleFavorite, domain.MessageFailedRemoveFavorite)
}

func (h *toggleHandler) AddToCart(c *fiber.Ctx) error {
	return h.add(c, domain.ToggleCart, toggleMessages{domain.MessageSuccessAddCart, domain.MessageFailedAddCart})
}

func (h *toggleHandler) RemoveFromCart(c *fiber.Ctx) error {
	return h.remove(c, domain.ToggleCart, domain.MessageFailedRemoveCart)
}

func (h *toggleHandler) Subscribe(c *fiber.Ctx) error {
	return h.add(c, domain.ToggleSubscription, toggleMessages{domain.MessageSuccessSubscribe, domain.MessageFailedSubscribe})
}

func (h *toggleHandler) Unsubscribe(c *fiber.Ctx) error {
	return h.remove(c, domain.ToggleSubscription, domain.MessageFailedUnsubscribe)
}

func (h *toggleHandler) add(c *fiber.Ctx, kind domain.ToggleKind, msg toggleMessages) error {
	targetID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	edge, err := h.toggleService.Add(c.UserContext(), middleware.UserID(c), targetID, kind)
	if err != nil {
		return presenters.DomainErrorResponse(c, msg.failed, err)
	}

	return presenters.SuccessResponse(c, edge, fiber.StatusCreated, msg.success)
}

func (h *toggleHandler) remove(c *fiber.Ctx, kind domain.ToggleKind, failed string) error {
	targetID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	if err := h.toggleService.Remove(c.UserContext(), middleware.UserID(c), targetID, kind); err != nil {
		return presenters.DomainErrorResponse(c, failed, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

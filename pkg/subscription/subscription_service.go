package subscription

import (
	"context"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
)

type (
	SubscriptionService interface {
		ListSubscriptions(ctx context.Context, actorID uint64, req domain.SubscriptionListRequest) (domain.SubscriptionListResponse, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepository: subscriptionRepository}
}

// ListSubscriptions pages through the authors actorID follows. Each author
// carries a recipe count and up to RecipesLimit of their newest recipes,
// all of them when the limit is 0.
func (s *subscriptionService) ListSubscriptions(ctx context.Context, actorID uint64, req domain.SubscriptionListRequest) (domain.SubscriptionListResponse, error) {
	const op = "subscription.list"

	page := req.PaginationRequest.Normalize()
	users, total, err := s.subscriptionRepository.GetSubscribedAuthors(ctx, actorID, page)
	if err != nil {
		return domain.SubscriptionListResponse{}, database.MapError(op, err)
	}

	ids := make([]uint64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	counts, err := s.subscriptionRepository.CountRecipesByAuthors(ctx, ids)
	if err != nil {
		return domain.SubscriptionListResponse{}, database.MapError(op, err)
	}
	recipes, err := s.subscriptionRepository.GetRecipesByAuthors(ctx, ids, req.RecipesLimit)
	if err != nil {
		return domain.SubscriptionListResponse{}, database.MapError(op, err)
	}

	byAuthor := make(map[uint64][]domain.RecipeShort, len(users))
	for _, r := range recipes {
		byAuthor[r.AuthorID] = append(byAuthor[r.AuthorID], domain.RecipeShort{
			ID:          r.ID,
			Name:        r.Name,
			ImageRef:    r.ImageRef,
			CookingTime: r.CookingTime,
		})
	}

	authors := make([]domain.SubscribedAuthor, 0, len(users))
	for _, u := range users {
		short := byAuthor[u.ID]
		if short == nil {
			short = []domain.RecipeShort{}
		}
		authors = append(authors, domain.SubscribedAuthor{
			ID:           u.ID,
			Email:        u.Email,
			Username:     u.Username,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			IsSubscribed: true,
			Recipes:      short,
			RecipesCount: counts[u.ID],
		})
	}

	return domain.SubscriptionListResponse{
		Authors: authors,
		PaginationResponse: domain.PaginationResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
		},
	}, nil
}

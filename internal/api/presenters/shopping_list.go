package presenters

import (
	"fmt"
	"strings"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/gofiber/fiber/v2"
)

func RenderShoppingList(items []domain.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString("Shopping list\n\n")
	if len(items) == 0 {
		b.WriteString("Your shopping cart is empty.\n")
		return b.String()
	}
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s): %d\n", item.Name, item.MeasurementUnit, item.TotalAmount)
	}
	return b.String()
}

func ShoppingListAttachment(c *fiber.Ctx, items []domain.ShoppingListItem) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Attachment(domain.ShoppingListFilename)
	return c.Status(fiber.StatusOK).SendString(RenderShoppingList(items))
}

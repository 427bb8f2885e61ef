package domain

var (
	MessageSuccessGetShoppingList = "success get shopping list"
	MessageFailedGetShoppingList  = "failed to get shopping list"

	ShoppingListFilename = "shopping_list.txt"
)

type ShoppingListItem struct {
	IngredientID    uint64 `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}

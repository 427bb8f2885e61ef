package database

import "github.com/fxckultimv/foodgram-project-react/entities"

// Models lists every table owned by the catalog, parents first.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Ingredient{},
		&entities.Tag{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.RecipeTag{},
		&entities.ToggleEdge{},
	}
}

package entities

type Recipe struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID    uint64 `gorm:"not null;index" json:"author_id"`
	Name        string `gorm:"size:200;not null" json:"name"`
	Text        string `gorm:"type:text;not null" json:"text"`
	ImageRef    string `gorm:"size:500" json:"image_ref,omitempty"`
	CookingTime int    `gorm:"not null;check:chk_recipes_cooking_time,cooking_time >= 1" json:"cooking_time"`

	Author      *User              `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []RecipeTag        `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

// RecipeIngredient is one ingredient line of a recipe. Position keeps the
// order the lines were submitted in.
type RecipeIngredient struct {
	RecipeID     uint64 `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	IngredientID uint64 `gorm:"primaryKey;autoIncrement:false" json:"ingredient_id"`
	Amount       int    `gorm:"not null;check:chk_recipe_ingredients_amount,amount >= 1" json:"amount"`
	Position     int    `gorm:"not null;default:0" json:"position"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:RESTRICT" json:"-"`
}

type RecipeTag struct {
	RecipeID uint64 `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	TagID    uint64 `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`

	Tag *Tag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

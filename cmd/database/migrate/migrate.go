package migration

import (
	"fmt"
	"strings"

	"github.com/fxckultimv/foodgram-project-react/entities"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	for _, model := range database.Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	filled, err := backfillIngredientNames(db)
	if err != nil {
		return fmt.Errorf("backfill ingredient names: %w", err)
	}

	log.Info().Int("models", len(database.Models())).Int64("backfilled", filled).Msg("database migration complete")
	return nil
}

// backfillIngredientNames fills name_lower for rows created before the
// column existed. Lowercasing happens in Go since SQL LOWER() is not
// Unicode-aware on every dialect.
func backfillIngredientNames(db *gorm.DB) (int64, error) {
	var rows []entities.Ingredient
	if err := db.Where("name_lower = ?", "").Find(&rows).Error; err != nil {
		return 0, err
	}
	var filled int64
	for _, row := range rows {
		res := db.Model(&entities.Ingredient{}).
			Where("id = ?", row.ID).
			UpdateColumn("name_lower", strings.ToLower(row.Name))
		if res.Error != nil {
			return filled, res.Error
		}
		filled += res.RowsAffected
	}
	return filled, nil
}

package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxckultimv/foodgram-project-react/domain"
)

// DecodeIngredientSeeds reads a JSON array of
// {"name": ..., "measurement_unit": ...} objects.
func DecodeIngredientSeeds(r io.Reader) ([]domain.IngredientSeed, error) {
	var seeds []domain.IngredientSeed
	if err := json.NewDecoder(r).Decode(&seeds); err != nil {
		return nil, fmt.Errorf("decode ingredient seeds: %w", err)
	}
	return seeds, nil
}

func DecodeTagSeeds(r io.Reader) ([]domain.TagSeed, error) {
	var seeds []domain.TagSeed
	if err := json.NewDecoder(r).Decode(&seeds); err != nil {
		return nil, fmt.Errorf("decode tag seeds: %w", err)
	}
	return seeds, nil
}

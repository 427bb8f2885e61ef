package catalog_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/entities"
	"github.com/fxckultimv/foodgram-project-react/internal/testutil"
	"github.com/fxckultimv/foodgram-project-react/pkg/catalog"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (catalog.CatalogService, *gorm.DB) {
	db := testutil.DB(t)
	svc := catalog.NewCatalogService(
		catalog.NewCatalogRepository(db),
		database.NewTxRunner(db),
		validator.New(),
		nil,
	)
	return svc, db
}

func TestImportIngredientsCountsCreatedAndExisting(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	seeds, err := catalog.DecodeIngredientSeeds(strings.NewReader(`[
		{"name": "flour", "measurement_unit": "g"},
		{"name": "sugar", "measurement_unit": "g"},
		{"name": "milk", "measurement_unit": "ml"}
	]`))
	require.NoError(t, err)

	res, err := svc.ImportIngredients(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportResult{Created: 3, Existing: 0}, res)

	seeds = append(seeds, domain.IngredientSeed{Name: "flour", MeasurementUnit: "kg"})
	res, err = svc.ImportIngredients(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportResult{Created: 1, Existing: 3}, res)

	var count int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}

func TestImportIngredientsRejectsBlankSeedWithoutWriting(t *testing.T) {
	svc, db := newService(t)

	_, err := svc.ImportIngredients(context.Background(), []domain.IngredientSeed{
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "", MeasurementUnit: "g"},
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	assert.Equal(t, domain.CodeInvalidSeed, domain.CodeOf(err))

	var count int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestImportTags(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	seeds, err := catalog.DecodeTagSeeds(strings.NewReader(`[
		{"name": "Breakfast", "color": "#E26C2D", "slug": "breakfast"},
		{"name": "Dinner", "color": "#49B64E", "slug": "dinner"}
	]`))
	require.NoError(t, err)

	res, err := svc.ImportTags(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)

	_, err = svc.ImportTags(ctx, []domain.TagSeed{{Name: "Lunch", Color: "green", Slug: "lunch"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Breakfast", tags[0].Name)
	assert.Equal(t, "Dinner", tags[1].Name)
}

func TestListIngredientsByPrefix(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	testutil.CreateIngredient(t, db, "Sugar", "g")
	testutil.CreateIngredient(t, db, "salt", "g")
	testutil.CreateIngredient(t, db, "flour", "g")

	all, err := svc.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := svc.ListIngredients(ctx, "S")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Sugar", got[0].Name)
	assert.Equal(t, "salt", got[1].Name)
}

func TestListIngredientsByPrefixNonASCIIAndWildcards(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	_, err := svc.ImportIngredients(ctx, []domain.IngredientSeed{{Name: "Мука", MeasurementUnit: "г"}})
	require.NoError(t, err)
	testutil.CreateIngredient(t, db, "Молоко", "мл")
	testutil.CreateIngredient(t, db, "salt", "g")
	testutil.CreateIngredient(t, db, "50%_cream", "ml")

	for _, prefix := range []string{"мук", "Мук", "МУКА"} {
		got, err := svc.ListIngredients(ctx, prefix)
		require.NoError(t, err, prefix)
		require.Len(t, got, 1, prefix)
		assert.Equal(t, "Мука", got[0].Name)
	}

	got, err := svc.ListIngredients(ctx, "м")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	for _, prefix := range []string{"%", "_", "s%", "!"} {
		got, err := svc.ListIngredients(ctx, prefix)
		require.NoError(t, err, prefix)
		assert.Empty(t, got, prefix)
	}

	got, err = svc.ListIngredients(ctx, "50%_")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "50%_cream", got[0].Name)
}

func TestGetMissingTagAndIngredient(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	_, err := svc.GetTag(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrMissingEntity)

	_, err = svc.GetIngredient(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrMissingEntity)

	flour := testutil.CreateIngredient(t, db, "flour", "g")
	got, err := svc.GetIngredient(ctx, flour.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IngredientResponse{ID: flour.ID, Name: "flour", MeasurementUnit: "g"}, got)
}

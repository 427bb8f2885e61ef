package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/fxckultimv/foodgram-project-react/entities"
	"github.com/fxckultimv/foodgram-project-react/internal/testutil"
	"github.com/fxckultimv/foodgram-project-react/pkg/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSubscriptions(t *testing.T) {
	db := testutil.DB(t)
	svc := subscription.NewSubscriptionService(subscription.NewSubscriptionRepository(db))
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")
	testutil.CreateUser(t, db, "dave")

	for _, name := range []string{"Soup", "Stew", "Bread"} {
		require.NoError(t, db.Create(&entities.Recipe{AuthorID: bob.ID, Name: name, Text: name, CookingTime: 30}).Error)
	}
	for _, target := range []uint64{bob.ID, carol.ID} {
		require.NoError(t, db.Create(&entities.ToggleEdge{ActorID: alice.ID, TargetID: target, Kind: string(domain.ToggleSubscription)}).Error)
	}

	res, err := svc.ListSubscriptions(ctx, alice.ID, domain.SubscriptionListRequest{RecipesLimit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
	require.Len(t, res.Authors, 2)

	byID := map[uint64]domain.SubscribedAuthor{}
	for _, a := range res.Authors {
		assert.True(t, a.IsSubscribed)
		byID[a.ID] = a
	}
	assert.EqualValues(t, 3, byID[bob.ID].RecipesCount)
	assert.Len(t, byID[bob.ID].Recipes, 2)
	assert.EqualValues(t, 0, byID[carol.ID].RecipesCount)
	assert.NotNil(t, byID[carol.ID].Recipes)

	res, err = svc.ListSubscriptions(ctx, alice.ID, domain.SubscriptionListRequest{})
	require.NoError(t, err)
	for _, a := range res.Authors {
		if a.ID == bob.ID {
			assert.Len(t, a.Recipes, 3)
		}
	}

	res, err = svc.ListSubscriptions(ctx, bob.ID, domain.SubscriptionListRequest{})
	require.NoError(t, err)
	assert.Empty(t, res.Authors)
	assert.Zero(t, res.Total)
}

func TestGetRecipesByAuthorsLimitsPerAuthor(t *testing.T) {
	db := testutil.DB(t)
	repo := subscription.NewSubscriptionRepository(db)
	ctx := context.Background()

	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	newest := map[uint64][]string{}
	for _, author := range []uint64{bob.ID, carol.ID} {
		for i, name := range []string{"Soup", "Stew", "Bread"} {
			r := entities.Recipe{AuthorID: author, Name: name, Text: name, CookingTime: 30}
			r.CreatedAt = base.Add(time.Duration(i) * time.Hour)
			require.NoError(t, db.Create(&r).Error)
		}
		newest[author] = []string{"Bread", "Stew"}
	}

	recipes, err := repo.GetRecipesByAuthors(ctx, []uint64{bob.ID, carol.ID}, 2)
	require.NoError(t, err)
	require.Len(t, recipes, 4)

	got := map[uint64][]string{}
	for _, r := range recipes {
		got[r.AuthorID] = append(got[r.AuthorID], r.Name)
	}
	assert.Equal(t, newest, got)

	recipes, err = repo.GetRecipesByAuthors(ctx, []uint64{bob.ID, carol.ID}, 0)
	require.NoError(t, err)
	assert.Len(t, recipes, 6)

	recipes, err = repo.GetRecipesByAuthors(ctx, []uint64{bob.ID}, 5)
	require.NoError(t, err)
	assert.Len(t, recipes, 3)
}

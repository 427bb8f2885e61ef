package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fxckultimv/foodgram-project-react/entities"
	"github.com/fxckultimv/foodgram-project-react/pkg/database"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// DB opens a fresh in-memory SQLite database with foreign keys enabled and
// the catalog schema migrated. Every call gets its own database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(tb, err)

	sqlDB, err := db.DB()
	require.NoError(tb, err)
	// a single connection keeps transactions and reads on the same handle
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(tb, db.AutoMigrate(database.Models()...))
	return db
}

func CreateUser(tb testing.TB, db *gorm.DB, username string) entities.User {
	tb.Helper()
	u := entities.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: strings.ToUpper(username[:1]) + username[1:],
	}
	require.NoError(tb, db.Create(&u).Error)
	return u
}

func CreateIngredient(tb testing.TB, db *gorm.DB, name, unit string) entities.Ingredient {
	tb.Helper()
	i := entities.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(tb, db.Create(&i).Error)
	return i
}

func CreateTag(tb testing.TB, db *gorm.DB, name, color string) entities.Tag {
	tb.Helper()
	t := entities.Tag{Name: name, Color: color, Slug: strings.ToLower(name)}
	require.NoError(tb, db.Create(&t).Error)
	return t
}

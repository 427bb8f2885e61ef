package config

import (
	"fmt"
	"time"

	"github.com/fxckultimv/foodgram-project-react/internal/utils"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for DB_TYPE. For sqlite DB_NAME is the
// database file path.
func Dialector() (gorm.Dialector, error) {
	host := utils.GetConfig("DB_HOST")
	port := utils.GetConfig("DB_PORT")
	user := utils.GetConfig("DB_USER")
	password := utils.GetConfig("DB_PASSWORD")
	name := utils.GetConfig("DB_NAME")

	switch utils.GetConfig("DB_TYPE") {
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			host, user, password, name, port,
		)
		return postgres.Open(dsn), nil
	case "mysql", "mariadb":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			user, password, host, port, name,
		)
		return mysql.Open(dsn), nil
	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s", user, password, host, port, name)
		return sqlserver.Open(dsn), nil
	case "sqlite":
		if name == "" {
			name = "foodgram.db"
		}
		return sqlite.Open(name + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", utils.GetConfig("DB_TYPE"))
	}
}

func ConnectDB() (*gorm.DB, error) {
	dialector, err := Dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	maxOpen := utils.GetConfigInt("DB_MAX_OPEN_CONNS", 10)
	if dialector.Name() == "sqlite" {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info().
		Str("dialect", dialector.Name()).
		Int("max_open_conns", maxOpen).
		Msg("database connected")
	return db, nil
}

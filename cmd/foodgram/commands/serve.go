package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fxckultimv/foodgram-project-react/cmd/config"
	migration "github.com/fxckultimv/foodgram-project-react/cmd/database/migrate"
	"github.com/fxckultimv/foodgram-project-react/internal/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := connect()
		if err != nil {
			return err
		}
		defer closeDB()

		if autoMigrate {
			if err := migration.Migrate(db); err != nil {
				return err
			}
		}

		app, err := config.NewApp(db, config.AppOptionsFromConfig())
		if err != nil {
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-quit
			log.Info().Msg("gracefully shutting down")
			if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
				log.Error().Err(err).Msg("shutdown")
			}
		}()

		addr := ":" + utils.GetConfig("APP_PORT")
		log.Info().Str("addr", addr).Msg("starting server")
		return app.Listen(addr)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Run migrations before serving")
}

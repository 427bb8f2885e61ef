package commands

import (
	"fmt"
	"os"

	"github.com/fxckultimv/foodgram-project-react/cmd/config"
	"github.com/fxckultimv/foodgram-project-react/internal/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "foodgram",
	Short: "Foodgram recipe catalog service",
	Long: `Foodgram serves the recipe catalog API: recipes built from catalog
ingredients and tags, favorites, shopping cart, subscriptions and the
aggregated shopping list.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := utils.LoadConfig(configPath); err != nil {
			return err
		}
		utils.InitLogger(utils.GetConfig("LOG_LEVEL"), utils.GetConfig("LOG_FORMAT"))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the yaml config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(loadIngredientsCmd)
	rootCmd.AddCommand(loadTagsCmd)
}

func connect() (*gorm.DB, func(), error) {
	db, err := config.ConnectDB()
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = sqlDB.Close() }, nil
}

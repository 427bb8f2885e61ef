package commands

import (
	migration "github.com/fxckultimv/foodgram-project-react/cmd/database/migrate"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := connect()
		if err != nil {
			return err
		}
		defer closeDB()
		return migration.Migrate(db)
	},
}

package cmd

import (
	"github.com/ArnaudCalmettes/greygrid/conf"
	"github.com/ArnaudCalmettes/greygrid/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Perform automatic database migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		return db.Close()
	},
}

// openDB connects to the job history and makes sure its schema is current.
func openDB() (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", viper.GetString(conf.DB))
	if err != nil {
		return nil, err
	}
	if err := models.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

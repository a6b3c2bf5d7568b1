package cmd

import (
	"fmt"

	"github.com/ArnaudCalmettes/greygrid/conf"
	"github.com/ArnaudCalmettes/greygrid/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the last grids made from the command line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		jobs, err := models.ListJobs(db, "", viper.GetInt(conf.HistoryLimit))
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Println("No job recorded yet (use `process --record`).")
			return nil
		}
		fmt.Print(models.FormatJobs(jobs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 10, "number of jobs to list")
	viper.BindPFlag(conf.HistoryLimit, historyCmd.Flags().Lookup("limit"))
}

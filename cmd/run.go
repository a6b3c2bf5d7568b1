package cmd

import (
	"github.com/ArnaudCalmettes/greygrid/bot"
	"github.com/ArnaudCalmettes/greygrid/conf"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var token string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Discord bot.",
	Run: func(cmd *cobra.Command, args []string) {
		if token != "" {
			viper.Set(conf.BotToken, token)
		}
		bot.Run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&token, "token", "t", "", "discord token")
	runCmd.Flags().String("prefix", ".", "command prefix")
	viper.BindPFlag(conf.BotPrefix, runCmd.Flags().Lookup("prefix"))
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ArnaudCalmettes/greygrid/conf"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "greygrid",
	Short: "Turn grayscale pictures into numbered grids",
	Long: `Greygrid splits a picture into square blocks, sorts every block into a few
brightness levels and draws the result twice: as shaded tiles, and as a
painting-by-numbers sheet where each block carries its level.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	conf.SetDefaults(viper.GetViper())

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.greygrid.yaml)")
	rootCmd.PersistentFlags().String("db", "greygrid.sqlite", "job history database")
	viper.BindPFlag(conf.DB, rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".greygrid" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".greygrid")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("GGRID")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

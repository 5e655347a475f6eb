package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgfile string

	rootCmd = &cobra.Command{
		Use:   "quizmcp",
		Short: "Root command for quizmcp",
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgfile, "config", "", "config file (default $HOME/.quizmcp.yaml)")
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if cfgfile != "" {
		viper.SetConfigFile(cfgfile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".quizmcp")
	}

	viper.AutomaticEnv()

	// a config file is optional; env vars cover everything
	if err := viper.ReadInConfig(); err == nil {
		log.Printf("using config file: %v", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

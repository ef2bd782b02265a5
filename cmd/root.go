/*
Copyright © 2024 Dean
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"filebot/src/log"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "filebot",
	Short: "Chat bot plugin for managing files under one base directory",
	Long: `filebot answers chat commands that send, list, delete, move and copy
files below a configured base directory. It can listen on an HTTP webhook,
consume a message bus, or run a single command from the terminal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.Setup(viper.GetString("log.level"), viper.GetBool("log.development"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./filebot.yaml)")
	rootCmd.PersistentFlags().String("base-path", "", "base directory all paths are resolved against")
	viper.BindPFlag("files.base_path", rootCmd.PersistentFlags().Lookup("base-path"))

	settingDefaultConfig()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("filebot")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Failed to read config file:", err)
	}
}

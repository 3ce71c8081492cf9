package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tlambert03/fpbase-go/cmd/fpbase/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "fpbase",
	Short: "FPbase spectra CLI",
	Long: `A command-line interface for the FPbase fluorescent protein database.

Look up fluorophores, optical filters, cameras, light sources, and
microscope configurations, or issue raw GraphQL queries against the
FPbase API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.fpbase/config.yml)")
	rootCmd.PersistentFlags().StringP("endpoint", "e", "", "GraphQL endpoint URL")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("cache", "", "response cache backend (memory, nats, none)")
	rootCmd.PersistentFlags().String("nats-url", "", "NATS server URL for the shared cache backend")

	// Bind flags to viper
	_ = viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("cache", rootCmd.PersistentFlags().Lookup("cache"))
	_ = viper.BindPFlag("nats-url", rootCmd.PersistentFlags().Lookup("nats-url"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewFluorophoresCommand())
	rootCmd.AddCommand(commands.NewFiltersCommand())
	rootCmd.AddCommand(commands.NewCamerasCommand())
	rootCmd.AddCommand(commands.NewLightsCommand())
	rootCmd.AddCommand(commands.NewMicroscopesCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewCacheCommand())
}

func initConfig() {
	// Local .env files supplement the environment for development setups.
	_ = godotenv.Load()

	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.fpbase/config.yml
		viper.AddConfigPath(filepath.Join(home, ".fpbase"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("FPBASE")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

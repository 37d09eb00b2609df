package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "kiroku",
	Short: "Personal anime tracker backend",
	Long:  "Track what you watch: a small HTTP API over a local catalog, backed by the Jikan API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default config/config.yaml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func resolveConfigPath() (string, bool) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("KIROKU_CONFIG")
	}
	if path == "" {
		path = "config/config.yaml"
	}
	envOnly := false
	if raw := os.Getenv("KIROKU_ENV_ONLY"); raw != "" {
		envOnly = strings.EqualFold(raw, "true") || raw == "1"
	}
	if _, err := os.Stat(path); err != nil {
		envOnly = true
	}
	return path, envOnly
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

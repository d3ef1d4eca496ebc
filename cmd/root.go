package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "slang.yml", "Path to the project config")
}

var rootCmd = &cobra.Command{
	Use:   "slang",
	Short: "slang: keep per-locale translation files consistent",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

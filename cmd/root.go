package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// configPath loads a single config file instead of the layered user and project files
	configPath string
	// debug forces debug logging
	debug bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fixturectl",
	Short: "Run test fixtures and browse their results",
	Long: `fixturectl discovers registered test fixtures, runs each one through its
setup, test and teardown lifecycle, and collects the outcomes into a result
tree that can be reported on the console, browsed interactively, or served
to an AI assistant over MCP.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. failed tests, invalid configuration)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "fixturectl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newStressCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file to load instead of ~/.config/fixturectl and ./.fixturectl")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

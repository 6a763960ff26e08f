package main

import (
	"fmt"
	"os"
	"time"

	"notes-app/internal/config"
	"notes-app/pkg/notesclient"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	apiURL string
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Terminal client for the notes API",
	Long: `notes opens an interactive view of your notes by default.
The subcommands script the same create, edit and delete operations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if apiURL == "" {
			apiURL = cfg.Client.APIURL
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newClient() *notesclient.Client {
	timeout := cfg.Client.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return notesclient.New(apiURL, timeout)
}

func printNote(n notesclient.Note) {
	fmt.Printf("%s %s\n", color.CyanString("#%d", n.Id), color.New(color.Bold).Sprint(n.Title))
	fmt.Printf("    %s\n", n.Content)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Notes API base URL (default $NOTES_API_URL)")
}

package main

import (
	"context"

	"notes-app/internal/pkg/logger"
	"notes-app/internal/ui/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive notes view",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func runTUI(ctx context.Context) error {
	// the terminal belongs to the view, logs go to a file only
	log := logger.NewIsolatedLogger(cfg.Client.LogFilePath)
	defer log.Sync()

	model := tui.New(ctx, newClient(), log, tui.Config{
		RemovalDelay:   cfg.Client.RemovalDelay,
		RequestTimeout: cfg.Client.RequestTimeout,
	})
	defer model.Close()

	log.Info("NotesView", "starting", map[string]interface{}{"api_url": apiURL})
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

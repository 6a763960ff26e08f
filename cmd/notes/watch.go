package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"notes-app/pkg/events"
	pktNats "notes-app/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	natsURL     string
	durableName string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream note events exported to NATS",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := natsURL
		if url == "" {
			url = cfg.Events.NatsURL
		}
		if url == "" {
			return fmt.Errorf("no NATS url: set --nats or NATS_URL")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sub, err := pktNats.NewSubscriber(url)
		if err != nil {
			return err
		}
		defer sub.Close()

		if err := sub.Subscribe(ctx, durableName, printEvent); err != nil {
			return err
		}

		color.Cyan("Watching %s.> on %s (ctrl+c to stop)", pktNats.SubjectPrefix, url)
		<-ctx.Done()
		return nil
	},
}

func printEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	stamp := event.Timestamp().Format("15:04:05")

	var label string
	switch event.EventType() {
	case events.NoteCreated:
		label = color.GreenString("created")
	case events.NoteUpdated:
		label = color.YellowString("updated")
	case events.NoteDeleted:
		label = color.RedString("deleted")
	default:
		label = event.EventType()
	}

	line := fmt.Sprintf("%s %s #%v", stamp, label, payload["note_id"])
	if title, ok := payload["title"].(string); ok {
		line += " " + title
	}
	fmt.Println(line)
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&natsURL, "nats", "", "NATS server URL (default $NATS_URL)")
	watchCmd.Flags().StringVar(&durableName, "durable", "", "Durable consumer name; empty only shows new events")
}

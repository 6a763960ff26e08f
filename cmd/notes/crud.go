package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	noteTitle   string
	noteContent string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := newClient().List(cmd.Context())
		if err != nil {
			return err
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(notes)
		}

		if len(notes) == 0 {
			color.Yellow("No notes yet.")
			return nil
		}
		for _, n := range notes {
			printNote(n)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := newClient().Create(cmd.Context(), noteTitle, noteContent)
		if err != nil {
			return err
		}
		color.Green("Created note #%d", note.Id)
		printNote(*note)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace the title and content of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid note id %q", args[0])
		}

		note, err := newClient().Update(cmd.Context(), id, noteTitle, noteContent)
		if err != nil {
			return err
		}
		color.Green("Updated note #%d", note.Id)
		printNote(*note)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid note id %q", args[0])
		}

		if err := newClient().Delete(cmd.Context(), id); err != nil {
			return err
		}
		color.Green("Deleted note #%d", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd, addCmd, editCmd, rmCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVarP(&noteTitle, "title", "t", "", "Note title")
		c.Flags().StringVarP(&noteContent, "content", "c", "", "Note content")
	}
}

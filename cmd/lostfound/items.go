package main

import (
	"github.com/spf13/cobra"
)

var returnCmd = &cobra.Command{
	Use:   "return <id>",
	Short: "Mark an item as returned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.MarkReturned(cmd.Context(), args[0])
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy an item's contact to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.CopyContact(cmd.Context(), args[0])
	},
}

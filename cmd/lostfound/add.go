package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/erazemk/lostfound/internal/form"
	"github.com/erazemk/lostfound/internal/ui"
)

var addFields form.Fields
var addImage string

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Report a lost or found item",
	Example: `  lostfound add --type lost --name Wallet --description "Brown leather" \
    --location "Bus 6" --contact me@example.com --image wallet.jpg`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	flags := addCmd.Flags()
	flags.StringVar(&addFields.Type, "type", "lost", "lost or found")
	flags.StringVar(&addFields.Name, "name", "", "item name")
	flags.StringVar(&addFields.Description, "description", "", "what it looks like")
	flags.StringVar(&addFields.Location, "location", "", "where it was lost or found")
	flags.StringVar(&addFields.Contact, "contact", "", "how to reach you")
	flags.StringVar(&addFields.Date, "date", "", "when (defaults to today)")
	flags.StringVar(&addFields.Category, "category", "", "optional category")
	flags.StringVar(&addImage, "image", "", "path to a photo")
}

func runAdd(cmd *cobra.Command, _ []string) error {
	item, err := app.Submit(cmd.Context(), addFields, form.FromPath(addImage))
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		out := cmd.ErrOrStderr()
		for _, name := range slices.Sorted(maps.Keys(ve.Fields)) {
			fmt.Fprintln(out, ui.FormatMuted("  --"+name+": "+ve.Fields[name]))
		}
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatMuted("id: "+item.ID))
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/ui"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light]",
	Short:     "Set or toggle the color theme",
	Long:      "Without an argument the saved theme is toggled.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(model.ThemeDark), string(model.ThemeLight)},
	RunE: func(cmd *cobra.Command, args []string) error {
		requested := model.ThemeAuto
		if len(args) == 1 {
			requested = model.ParseTheme(args[0])
		}
		theme, err := app.SetTheme(cmd.Context(), requested)
		if err != nil {
			return err
		}
		ui.SetTheme(theme)
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess("Theme: "+string(theme)))
		return nil
	},
}

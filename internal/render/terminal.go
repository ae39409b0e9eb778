package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/erazemk/lostfound/internal/ui"
)

// WriteTerminal prints panes as styled text cards.
func WriteTerminal(w io.Writer, panes ...*Pane) error {
	for i, pane := range panes {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		title := ui.StyleTitle
		switch pane.Name {
		case "lost":
			title = ui.StylePaneLost
		case "found":
			title = ui.StylePaneFound
		}
		if _, err := fmt.Fprintln(w, title.Render(pane.Title)); err != nil {
			return err
		}

		for _, card := range pane.Cards {
			if _, err := fmt.Fprintln(w, ui.StyleCard.Render(terminalCard(card))); err != nil {
				return err
			}
		}
	}
	return nil
}

func terminalCard(card Card) string {
	if card.Placeholder {
		return ui.FormatMuted(card.Meta)
	}

	header := ui.StyleCardTitle.Render(card.Title)
	if card.Image != nil {
		header += " " + ui.IconImage
	}

	lines := []string{
		header,
		ui.FormatMuted(card.Meta),
		card.Description,
	}
	if len(card.Tags) > 0 {
		tags := make([]string, 0, len(card.Tags))
		for _, t := range card.Tags {
			tags = append(tags, ui.StyleTag.Render("#"+t))
		}
		lines = append(lines, strings.Join(tags, " "))
	}
	lines = append(lines, ui.FormatMuted("id: "+card.ItemID))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

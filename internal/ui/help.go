package ui

import (
	"strings"

	"rihla/internal/model"
	"rihla/internal/wizard"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders the context-sensitive help footer.
func RenderHelp(screen model.Screen, step wizard.Step, width int) string {
	if screen == model.ScreenHistory {
		return renderHelpLine([]string{
			helpKey("j/k", "browse"),
			helpKey("w", "wizard"),
			helpKey("q", "quit"),
		}, width)
	}

	switch step {
	case wizard.StepPreferences:
		return renderHelpLine([]string{
			helpKey("tab", "next field"),
			helpKey("shift+tab", "prev field"),
			helpKey("←/→", "cycle option"),
			helpKey("space", "toggle"),
			helpKey("ctrl+s", "continue"),
			helpKey("?", "help"),
		}, width)
	case wizard.StepItinerary:
		return renderHelpLine([]string{
			helpKey("j/k", "navigate"),
			helpKey("←/→", "days -/+"),
			helpKey("a", "add stop"),
			helpKey("d", "remove"),
			helpKey("esc", "back"),
			helpKey("ctrl+s", "continue"),
		}, width)
	case wizard.StepSelection:
		return renderHelpLine([]string{
			helpKey("←/→", "slot"),
			helpKey("j/k", "candidate"),
			helpKey("enter", "select"),
			helpKey("esc", "back"),
			helpKey("ctrl+s", "compose"),
		}, width)
	case wizard.StepReview:
		return renderHelpLine([]string{
			helpKey("n", "new circuit"),
			helpKey("H", "history"),
			helpKey("q", "quit"),
		}, width)
	default:
		return renderHelpLine([]string{
			helpKey("q", "quit"),
			helpKey("?", "help"),
		}, width)
	}
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width - 4).
		Height(height - 6).
		Padding(1, 2)

	sections := []string{
		titleSection("Wizard"),
		helpSection([]helpItem{
			{"ctrl+s", "Validate and continue to the next step"},
			{"esc", "Back to the previous step"},
			{"H", "Open circuit history"},
			{"w", "Back to the wizard"},
			{"q / ctrl+c", "Quit (the draft is saved)"},
			{"?", "Toggle help"},
		}),
		titleSection("Step 1 — Preferences"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Move between fields"},
			{"←/→", "Cycle cities and accommodation"},
			{"space", "Toggle a cuisine or activity"},
		}),
		titleSection("Step 2 — Itinerary"),
		helpSection([]helpItem{
			{"j / k", "Move between stops"},
			{"←/→", "Decrease / increase days at the stop"},
			{"a", "Add an intermediate destination"},
			{"d", "Remove the selected stop"},
		}),
		titleSection("Step 3 — Selection"),
		helpSection([]helpItem{
			{"←/→", "Previous / next slot"},
			{"j / k", "Move between candidates"},
			{"enter / space", "Select, or deselect the chosen one"},
		}),
		titleSection("Step 4 — Review"),
		helpSection([]helpItem{
			{"←/→ then enter", "Decide on a duplicate circuit"},
			{"n", "Start a new circuit"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}

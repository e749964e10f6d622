package listview

import "github.com/charmbracelet/lipgloss"

// Styles used by the list view.
//
//nolint:gochecknoglobals // Style definitions are shared, immutable values.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)

	skeletonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Faint(true)
)

// skeletonRow is rendered for rows that have not been revealed yet.
const skeletonRow = "░░░░░░░░░░░░"

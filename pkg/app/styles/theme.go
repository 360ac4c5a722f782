package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#C792EA")
	Secondary  = lipgloss.Color("#82AAFF")
	Success    = lipgloss.Color("#C3E88D")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#F07178")
	Muted      = lipgloss.Color("#546E7A")
	Foreground = lipgloss.Color("#EEFFFF")

	RoundedBorder = lipgloss.RoundedBorder()
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	PanelStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(1, 2).
			MarginBottom(1)

	// Phase styles
	PhaseRunning = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	PhaseDone = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	PhaseError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(Primary)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)
)

// PhaseStyle picks the style matching a pipeline phase.
func PhaseStyle(phase string) lipgloss.Style {
	switch phase {
	case "resolving", "rendering", "paginating", "writing":
		return PhaseRunning
	case "complete":
		return PhaseDone
	case "error":
		return PhaseError
	default:
		return MutedStyle
	}
}

package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	startButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFDF5")).
				Background(lipgloss.Color("#25A065")).
				Padding(0, 2).
				Bold(true)

	stopButtonStyle = startButtonStyle.
			Background(lipgloss.Color("#D7263D"))

	disabledButtonStyle = startButtonStyle.
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("238"))

	timerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#25A065")).
			Padding(0, 1)

	successNoticeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#25A065")).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("#25A065")).
				PaddingLeft(1)

	errorNoticeStyle = successNoticeStyle.
				Foreground(lipgloss.Color("#D7263D")).
				BorderForeground(lipgloss.Color("#D7263D"))

	infoNoticeStyle = successNoticeStyle.
			Foreground(lipgloss.Color("#FFFDF5")).
			BorderForeground(lipgloss.Color("240"))
)

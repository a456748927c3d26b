package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"node.town/voxnote/notify"
	"node.town/voxnote/txt"
)

type (
	recordingMsg struct{}
	idleMsg      struct{}
	timerMsg     struct {
		text     string
		progress float64
	}
	loadingMsg struct{ on bool }
	resultMsg  struct {
		text    string
		visible bool
	}
	disabledMsg struct{ label string }
	noticesMsg  struct{}
)

type Model struct {
	toggle  func()
	notices func() []notify.Notice
	onStart func()

	recording bool
	disabled  string
	timer     string
	percent   float64
	loading   bool
	result    string
	showing   bool
	width     int

	bar     progress.Model
	spinner spinner.Model
}

// NewModel builds the recorder screen. toggle runs off the update loop since
// it may block on the microphone.
func NewModel(toggle func(), notices func() []notify.Notice) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{
		toggle:  toggle,
		notices: notices,
		timer:   "0:00",
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner: s,
	}
}

// OnStart sets a hook that runs once the program's event loop is up.
func (m Model) OnStart(f func()) Model {
	m.onStart = f
	return m
}

func (m Model) Init() tea.Cmd {
	if m.onStart == nil {
		return nil
	}
	start := m.onStart
	return func() tea.Msg {
		start()
		return noticesMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case " ", "enter":
			if m.disabled != "" || m.toggle == nil {
				return m, nil
			}
			toggle := m.toggle
			return m, func() tea.Msg {
				toggle()
				return nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(40, max(10, msg.Width-12))

	case recordingMsg:
		m.recording = true
		m.timer = "0:00"
		m.percent = 0

	case idleMsg:
		m.recording = false

	case timerMsg:
		m.timer = msg.text
		m.percent = msg.progress

	case loadingMsg:
		m.loading = msg.on
		if msg.on {
			return m, m.spinner.Tick
		}

	case resultMsg:
		m.result = msg.text
		m.showing = msg.visible

	case disabledMsg:
		m.disabled = msg.label
		m.recording = false

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	sections := []string{
		titleStyle.Render(txt.Title),
		"",
		m.buttonView(),
		m.statusView(),
	}
	if m.loading {
		sections = append(sections, m.spinner.View()+" "+txt.Transcribing)
	}
	if m.showing {
		sections = append(sections, "", m.resultView())
	}
	if notices := m.noticesView(); notices != "" {
		sections = append(sections, "", notices)
	}
	sections = append(sections, "", dimStyle.Render(txt.Help))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) buttonView() string {
	switch {
	case m.disabled != "":
		return disabledButtonStyle.Render(m.disabled)
	case m.recording:
		return stopButtonStyle.Render(txt.StopLabel)
	default:
		return startButtonStyle.Render(txt.StartLabel)
	}
}

func (m Model) statusView() string {
	if !m.recording {
		return ""
	}
	return timerStyle.Render(m.timer) + " " + m.bar.ViewAs(m.percent)
}

func (m Model) resultView() string {
	body := txt.ResultTitle + "\n\n" + m.result
	if m.width > 4 {
		return resultStyle.Width(m.width - 4).Render(body)
	}
	return resultStyle.Render(body)
}

func (m Model) noticesView() string {
	if m.notices == nil {
		return ""
	}
	var lines []string
	for _, n := range m.notices() {
		lines = append(lines, noticeStyle(n.Kind).Render(n.Message))
	}
	return strings.Join(lines, "\n")
}

func noticeStyle(kind notify.Kind) lipgloss.Style {
	switch kind {
	case notify.Success:
		return successNoticeStyle
	case notify.Error:
		return errorNoticeStyle
	default:
		return infoNoticeStyle
	}
}

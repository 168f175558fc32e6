package intf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vlc/internal/core"
	"vlc/internal/logging"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD"))
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

// tui is a terminal interface that shows the playlist until the stop flag
// is raised or the user quits.
type tui struct {
	root    *core.Context
	logger  *slog.Logger
	poll    time.Duration
	input   io.Reader
	output  io.Writer
	outputs []core.Output
}

func newTUI(root *core.Context) (core.InterfaceModule, error) {
	return &tui{
		root:   root,
		logger: logging.NewComponentLogger(root.Logger, "intf.tui"),
		poll:   pollInterval(root),
	}, nil
}

func (t *tui) Run(ctx context.Context, stop core.StopFlag) error {
	t.outputs = openOutputs(t.root, t.logger)

	var items []string
	if t.root.Playlist != nil {
		for _, spec := range t.root.Playlist.Items() {
			items = append(items, describe(spec))
		}
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithoutSignalHandler()}
	if t.input != nil {
		opts = append(opts, tea.WithInput(t.input))
	}
	if t.output != nil {
		opts = append(opts, tea.WithOutput(t.output))
	}
	program := tea.NewProgram(newTUIModel(stop, t.poll, items), opts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal interface: %w", err)
	}
	return nil
}

func (t *tui) Close() error {
	outputs := t.outputs
	t.outputs = nil
	return closeOutputs(outputs)
}

type stopCheckMsg time.Time

type tuiModel struct {
	stop     core.StopFlag
	poll     time.Duration
	items    []string
	spinner  spinner.Model
	quitting bool
}

func newTUIModel(stop core.StopFlag, poll time.Duration, items []string) tuiModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return tuiModel{stop: stop, poll: poll, items: items, spinner: s}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, stopCheckCmd(m.poll))
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case stopCheckMsg:
		if m.stop.StopRequested() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, stopCheckCmd(m.poll)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("vlc") + " " + m.spinner.View() + "\n\n")
	if len(m.items) == 0 {
		b.WriteString(itemStyle.Render(mutedStyle.Render("playlist is empty")) + "\n")
	}
	for i, item := range m.items {
		b.WriteString(itemStyle.Render(fmt.Sprintf("%d. %s", i+1, item)) + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("q: quit") + "\n")
	return b.String()
}

func stopCheckCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return stopCheckMsg(t)
	})
}

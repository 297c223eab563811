package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type refreshDoneMsg struct {
	err error
}

type refreshSpinnerModel struct {
	spinner spinner.Model
	label   string
	refresh tea.Cmd
	err     error
	done    bool
}

func newRefreshSpinnerModel(label string, refresh tea.Cmd) refreshSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return refreshSpinnerModel{
		spinner: s,
		label:   label,
		refresh: refresh,
	}
}

func (m refreshSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh)
}

func (m refreshSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case refreshDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m refreshSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runRefreshSpinner(ctx context.Context, output io.Writer, refresh func(context.Context) error) error {
	refreshCmd := func() tea.Msg {
		return refreshDoneMsg{err: refresh(ctx)}
	}

	p := tea.NewProgram(
		newRefreshSpinnerModel("Refreshing scope lists...", refreshCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(refreshSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

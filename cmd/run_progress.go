package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
)

type runLogMsg struct {
	level   domain.LogLevel
	message string
}

type runProgressMsg struct {
	current int
	total   int
}

type runCountsMsg struct {
	processed int
	success   int
	failed    int
}

type runDoneMsg struct{}

type runProgressModel struct {
	spinner   spinner.Model
	label     string
	progress  runProgressMsg
	counts    runCountsMsg
	warnStyle lipgloss.Style
	done      bool
}

func newRunProgressModel(label string) runProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return runProgressModel{
		spinner:   s,
		label:     label,
		warnStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func (m runProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m runProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case runLogMsg:
		line := msg.message
		if msg.level == domain.LogLevelWarn || msg.level == domain.LogLevelError {
			line = m.warnStyle.Render(line)
		}
		return m, tea.Println(line)
	case runProgressMsg:
		m.progress = msg
		return m, nil
	case runCountsMsg:
		m.counts = msg
		return m, nil
	case runDoneMsg:
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m runProgressModel) View() string {
	if m.done {
		return ""
	}

	view := fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	if m.progress.total > 0 {
		view += fmt.Sprintf(" [%d/%d]", m.progress.current, m.progress.total)
	}
	if m.counts.processed > 0 {
		view += fmt.Sprintf(" 성공 %d / 실패 %d", m.counts.success, m.counts.failed)
	}

	return view
}

// programObserver forwards run events into the progress program.
type programObserver struct {
	send func(tea.Msg)
}

var _ ports.RunObserver = programObserver{}

func (o programObserver) OnLog(level domain.LogLevel, message string) {
	if level == domain.LogLevelDebug {
		return
	}
	o.send(runLogMsg{level: level, message: message})
}

func (o programObserver) OnProgress(current int, total int) {
	o.send(runProgressMsg{current: current, total: total})
}

func (o programObserver) OnCounts(processed int, success int, failed int) {
	o.send(runCountsMsg{processed: processed, success: success, failed: failed})
}

func (o programObserver) OnStoreCompleted(domain.StoreRunResult) {}

func (o programObserver) OnRunCompleted(domain.RunResult) {}

func (o programObserver) OnRunFailed(error) {}

// runWithProgress runs work while a spinner program renders its events on
// output. The program stops once work returns.
func runWithProgress(ctx context.Context, output io.Writer, label string, work func(ports.RunObserver) error) error {
	p := tea.NewProgram(
		newRunProgressModel(label),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	var g errgroup.Group
	g.Go(func() error {
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run progress view: %w", err)
		}
		return nil
	})

	var workErr error
	g.Go(func() error {
		defer p.Send(runDoneMsg{})
		workErr = work(programObserver{send: p.Send})
		return nil
	})

	waitErr := g.Wait()
	if workErr != nil {
		return workErr
	}

	return waitErr
}

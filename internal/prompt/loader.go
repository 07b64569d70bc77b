package prompt

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg[T any] struct {
	value T
	err   error
}

type loaderModel[T any] struct {
	label   string
	ctx     context.Context
	cancel  context.CancelFunc
	fn      func(ctx context.Context) (T, error)
	spinner spinner.Model
	result  T
	err     error
	done    bool
}

func newLoaderModel[T any](ctx context.Context, label string, fn func(ctx context.Context) (T, error)) loaderModel[T] {
	ctx, cancel := context.WithCancel(ctx)
	return loaderModel[T]{
		label:   label,
		ctx:     ctx,
		cancel:  cancel,
		fn:      fn,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
	}
}

func (m loaderModel[T]) Init() tea.Cmd {
	return tea.Batch(m.run(), m.spinner.Tick)
}

func (m loaderModel[T]) run() tea.Cmd {
	ctx, fn := m.ctx, m.fn
	return func() tea.Msg {
		v, err := fn(ctx)
		return doneMsg[T]{value: v, err: err}
	}
}

func (m loaderModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg[T]:
		m.result = msg.value
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.done = true
			m.err = fmt.Errorf("cancelled: %w", context.Canceled)
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m loaderModel[T]) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s...\n", m.spinner.View(), m.label)
}

// RunLoader shows a spinner labelled label while fn runs. It renders inline
// (no alt screen). ctrl+c cancels the context passed to fn.
func RunLoader[T any](ctx context.Context, label string, fn func(ctx context.Context) (T, error)) (T, error) {
	m := newLoaderModel(ctx, label, fn)
	defer m.cancel()

	result, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		var zero T
		return zero, err
	}
	final := result.(loaderModel[T])
	return final.result, final.err
}

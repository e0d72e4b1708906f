package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
)

// RunBoard runs the dashboard until the user quits. The midnight rollover
// scheduler lives exactly as long as the program.
func RunBoard(ctx context.Context, svc *engine.Service, events <-chan engine.Event, out io.Writer) error {
	m := newBoardModel(ctx, svc, events)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))

	sched := engine.NewRolloverScheduler(svc)
	sched.OnRoll = func(res engine.RolloverResult, err error) {
		p.Send(rolledMsg{res: res, err: err})
	}
	sched.Start()
	defer sched.Stop()

	_, err := p.Run()
	return err
}

package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(tui.Services{
		Doses:       ctx.Doses,
		Medications: ctx.Medications,
		Compliance:  ctx.Compliance,
		Store:       ctx.Store,
	}, profile), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}

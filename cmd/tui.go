package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotq/internal/shared"
	"github.com/desertthunder/spotq/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive query browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	conf := r.config.Log
	if conf.File == "" {
		conf.File = "./tmp/spotq-tui.log"
	}
	r.SetLogger(shared.NewFileLogger(conf))

	client, err := r.authorized(ctx)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, client, cmd.StringArg("path"))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

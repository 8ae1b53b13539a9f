package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"moms-kitchen/storefront/connection"
	"moms-kitchen/storefront/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive storefront",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

func (a *app) runTUI(cmd *cobra.Command) error {
	var monitor *connection.Monitor
	if a.kitchen != nil {
		monitor = connection.NewMonitor(a.kitchen, a.cfg.Connection.BannerDebounce, connection.WithLogger(a.logger))
	}

	model := tui.New(tui.Deps{
		Store:          a.store,
		Backend:        a.backend,
		Monitor:        monitor,
		HealthInterval: a.cfg.Connection.HealthInterval,
		Logger:         a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err := p.Run()
	return err
}

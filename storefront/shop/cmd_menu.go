package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"moms-kitchen/storefront/money"
	"moms-kitchen/storefront/types"
)

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			menu, err := a.backend.GetMenu(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load menu: %w", err)
			}
			printMenu(cmd.OutOrStdout(), menu)
			return nil
		},
	}
}

func printMenu(out io.Writer, menu []types.MenuItem) {
	if len(menu) == 0 {
		fmt.Fprintln(out, "No menu items available yet.")
		return
	}
	t := newTable("ID", "DISH", "PRICE", "")
	for _, item := range menu {
		note := ""
		if !item.Available {
			note = "unavailable"
		}
		t.Row(strconv.FormatUint(item.ID, 10), item.Name, money.FormatCents(item.Price), note)
	}
	fmt.Fprintln(out, t.Render())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// findMenuItem fetches the menu and returns the dish with id.
func (a *app) findMenuItem(cmd *cobra.Command, id uint64) (types.MenuItem, error) {
	menu, err := a.backend.GetMenu(cmd.Context())
	if err != nil {
		return types.MenuItem{}, fmt.Errorf("failed to load menu: %w", err)
	}
	for _, item := range menu {
		if item.ID == id {
			return item, nil
		}
	}
	return types.MenuItem{}, &types.NotFoundError{Kind: "menu item", ID: id}
}

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moms-kitchen/storefront/menuadmin"
	"moms-kitchen/storefront/money"
	"moms-kitchen/storefront/types"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the menu and orders",
	}

	var form menuadmin.Form
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a dish to the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := menuadmin.NewService(a.backend, a.logger).Create(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created #%d %s at %s\n", item.ID, item.Name, money.FormatCents(item.Price))
			return nil
		},
	}
	create.Flags().StringVar(&form.Name, "name", "", "Dish name")
	create.Flags().StringVar(&form.Description, "description", "", "Dish description")
	create.Flags().StringVar(&form.Price, "price", "", "Price in dollars, e.g. 12.50")
	create.Flags().StringVar(&form.ImageURL, "image", "", "Image URL")

	availability := &cobra.Command{
		Use:   "availability <menu-item-id> <true|false>",
		Short: "Mark a dish as orderable or not",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			want, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid availability %q", args[1])
			}
			item, err := a.findMenuItem(cmd, id)
			if err != nil {
				return err
			}

			if item.Available != want {
				if _, err := menuadmin.NewService(a.backend, a.logger).ToggleAvailability(cmd.Context(), item); err != nil {
					return err
				}
			}
			state := "unavailable"
			if want {
				state = "available"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", item.Name, state)
			return nil
		},
	}

	advance := &cobra.Command{
		Use:   "advance <order-id> <status>",
		Short: "Move an order to a new status",
		Long: `Move an order along its lifecycle on the development backend.

Statuses: pending, inPreparation, outForDelivery, delivered, cancelled.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status := types.OrderStatus(args[1])
			if !status.Valid() {
				return fmt.Errorf("unknown status %q", args[1])
			}
			if a.kitchen == nil {
				return errors.New("advancing orders needs the Temporal backend")
			}
			if err := a.kitchen.AdvanceOrder(cmd.Context(), id, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order #%d -> %s\n", id, status.Label())
			return nil
		},
	}

	cmd.AddCommand(create, availability, advance)
	return cmd
}

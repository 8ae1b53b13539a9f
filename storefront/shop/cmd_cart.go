package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"moms-kitchen/storefront/cart"
	"moms-kitchen/storefront/money"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printCart(cmd.OutOrStdout(), a.store.State())
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printCart(cmd.OutOrStdout(), a.store.State())
			return nil
		},
	}

	var quantity int
	add := &cobra.Command{
		Use:   "add <menu-item-id>",
		Short: "Add a dish to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if quantity < 1 {
				return fmt.Errorf("quantity must be at least 1")
			}
			item, err := a.findMenuItem(cmd, id)
			if err != nil {
				return err
			}
			if !item.Available {
				return fmt.Errorf("%s is not available right now", item.Name)
			}

			for i := 0; i < quantity; i++ {
				a.store.AddItem(item)
			}
			line, _ := a.store.State().Line(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (now %d in cart)\n", item.Name, line.Quantity)
			return nil
		},
	}
	add.Flags().IntVarP(&quantity, "quantity", "n", 1, "How many to add")

	remove := &cobra.Command{
		Use:   "remove <menu-item-id>",
		Short: "Remove a dish from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), a.store.RemoveItem(id))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <menu-item-id> <quantity>",
		Short: "Set the quantity of a dish; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			printCart(cmd.OutOrStdout(), a.store.UpdateQuantity(id, qty))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.store.ClearCart()
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		},
	}

	cmd.AddCommand(show, add, remove, set, clearCmd)
	return cmd
}

func printCart(out io.Writer, state cart.State) {
	if state.Empty() {
		fmt.Fprintln(out, "Your cart is empty.")
		return
	}
	t := newTable("ID", "DISH", "QTY", "TOTAL")
	for _, line := range state.Lines() {
		t.Row(
			strconv.FormatUint(line.Item.ID, 10),
			line.Item.Name,
			strconv.Itoa(line.Quantity),
			money.Format(cart.LineTotal(line.Item.Price, line.Quantity)),
		)
	}
	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "%d items, subtotal %s\n", state.TotalItemCount(), money.Format(state.Subtotal()))
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

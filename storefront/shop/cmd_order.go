package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"moms-kitchen/storefront/checkout"
	"moms-kitchen/storefront/money"
	"moms-kitchen/storefront/tracking"
	"moms-kitchen/storefront/types"
)

func newCheckoutCmd(a *app) *cobra.Command {
	var form checkout.Form
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := checkout.NewService(a.store, a.backend, a.logger).Submit(cmd.Context(), form)
			switch {
			case errors.Is(err, checkout.ErrEmptyCart):
				return errors.New("your cart is empty; add something from the menu first")
			case errors.Is(err, types.ErrBackendUnavailable):
				return fmt.Errorf("could not reach the kitchen, your cart is saved: %w", err)
			case err != nil:
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Order Confirmed!")
			fmt.Fprintf(out, "Order #%d  %s  total %s\n", order.ID, order.Status.Label(), money.FormatCents(order.TotalPrice))
			fmt.Fprintf(out, "Track it with: shop order status %d\n", order.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&form.Address, "address", "", "Delivery address")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "Notes for the kitchen")
	return cmd
}

func newOrderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Track orders",
	}

	status := &cobra.Command{
		Use:   "status <order-id>",
		Short: "Show the status of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := tracking.ParseOrderID(args[0])
			if err != nil {
				return err
			}
			result, err := tracking.NewService(a.backend, a.logger).Lookup(cmd.Context(), id)
			var notFound *types.NotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("order #%d not found", id)
			}
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "List all orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a.backend.GetOrderHistory(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load order history: %w", err)
			}
			printHistory(cmd.OutOrStdout(), orders)
			return nil
		},
	}

	cmd.AddCommand(status, history)
	return cmd
}

func printResult(out io.Writer, r tracking.Result) {
	fmt.Fprintf(out, "Order #%d: %s\n", r.ID, r.Status.Label())
	fmt.Fprintln(out, r.Status.Message())
	if r.Order == nil {
		return
	}
	for _, item := range r.Order.Items {
		fmt.Fprintf(out, "  Item #%d x %d\n", item.MenuItemID, item.Quantity)
	}
	fmt.Fprintf(out, "Total: %s\n", money.FormatCents(r.Order.TotalPrice))
}

func printHistory(out io.Writer, orders []types.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(out, "No orders yet.")
		return
	}
	t := newTable("ORDER", "STATUS", "ITEMS", "TOTAL", "PLACED")
	for _, o := range orders {
		items := uint64(0)
		for _, item := range o.Items {
			items += item.Quantity
		}
		t.Row(
			"#"+strconv.FormatUint(o.ID, 10),
			types.NormalizeOrderStatus(string(o.Status)).Label(),
			strconv.FormatUint(items, 10),
			money.FormatCents(o.TotalPrice),
			o.Timestamp.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Fprintln(out, t.Render())
}

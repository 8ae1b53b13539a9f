package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"moms-kitchen/storefront/cart"
	"moms-kitchen/storefront/money"
	"moms-kitchen/storefront/types"
)

// ReceiptMarkdown describes a placed order. lines is the cart as it was
// submitted and supplies dish names.
func ReceiptMarkdown(order types.Order, lines []cart.Line) string {
	byID := make(map[uint64]cart.Line, len(lines))
	for _, line := range lines {
		byID[line.Item.ID] = line
	}

	var b strings.Builder
	b.WriteString("# Order Confirmed!\n\n")
	b.WriteString("Thank you for your order. We'll start preparing it right away.\n\n")
	fmt.Fprintf(&b, "## Order #%d · %s\n\n", order.ID, types.NormalizeOrderStatus(string(order.Status)).Label())

	b.WriteString("| Item | Qty | Price |\n|---|---:|---:|\n")
	for _, item := range order.Items {
		name := fmt.Sprintf("Item #%d", item.MenuItemID)
		price := "-"
		if line, ok := byID[item.MenuItemID]; ok {
			name = line.Item.Name
			price = money.Format(cart.LineTotal(line.Item.Price, int(item.Quantity)))
		}
		fmt.Fprintf(&b, "| %s | %d | %s |\n", name, item.Quantity, price)
	}

	fmt.Fprintf(&b, "\n**Total: %s**\n\n", money.FormatCents(order.TotalPrice))
	if !order.Timestamp.IsZero() {
		fmt.Fprintf(&b, "Order placed: %s\n", order.Timestamp.Local().Format("2006-01-02 15:04"))
	}
	return b.String()
}

// renderMarkdown renders md for the terminal, falling back to the raw text.
func renderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

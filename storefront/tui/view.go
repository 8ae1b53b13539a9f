package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"moms-kitchen/storefront/cart"
	"moms-kitchen/storefront/connection"
	"moms-kitchen/storefront/money"
	"moms-kitchen/storefront/tracking"
	"moms-kitchen/storefront/types"
)

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	if banner := m.banner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.screen {
	case screenMenu:
		b.WriteString(m.menuView())
	case screenCart:
		b.WriteString(m.cartView())
	case screenCheckout:
		b.WriteString(m.checkoutView())
	case screenConfirmation:
		b.WriteString(m.confirmationView())
	case screenTrack:
		b.WriteString(m.trackView())
	}
	return b.String()
}

func (m Model) header() string {
	tabs := []struct {
		s     screen
		label string
	}{
		{screenMenu, "Menu [m]"},
		{screenCart, fmt.Sprintf("Cart (%d) [c]", m.store.TotalItemCount())},
		{screenTrack, "Track [t]"},
	}

	parts := []string{m.styles.Title.Render("Mom's Kitchen")}
	for _, tab := range tabs {
		style := m.styles.Tab
		if tab.s == m.screen || (tab.s == screenCart && m.screen == screenCheckout) {
			style = m.styles.ActTab
		}
		parts = append(parts, style.Render(tab.label))
	}
	return strings.Join(parts, " ")
}

func (m Model) banner() string {
	if !m.showBanner() {
		return ""
	}
	action := "[r] Retry"
	if m.monitor.Status() == connection.Connecting {
		action = m.spinner.View() + " Connecting..."
	}
	text := m.styles.Error.Render("Connection Error") + "\n" +
		"Unable to connect to the backend. Please check your connection and try again.  " + action
	if err := m.monitor.Err(); err != nil {
		text += "\n" + m.styles.Muted.Render(err.Error())
	}
	return m.styles.Banner.Render(text)
}

func (m Model) menuView() string {
	var b strings.Builder
	switch {
	case m.menuLoading && m.menu == nil:
		b.WriteString(m.spinner.View() + " Loading menu...\n")
	case m.menuErr != nil && m.menu == nil:
		b.WriteString(m.styles.Error.Render("Failed to load menu. Press r to try again.") + "\n")
	case len(m.menu) == 0:
		b.WriteString(m.styles.Muted.Render("No menu items available yet.") + "\n")
	}

	for i, item := range m.menu {
		cursor := "  "
		name := item.Name
		if i == m.menuCursor {
			cursor = "> "
			name = m.styles.Selected.Render(name)
		}
		line := fmt.Sprintf("%s%s  %s", cursor, name, m.styles.Price.Render(money.FormatCents(item.Price)))
		if !item.Available {
			line += "  " + m.styles.Muted.Render("(unavailable)")
		}
		b.WriteString(line + "\n")
		if item.Description != "" {
			b.WriteString("    " + m.styles.Muted.Render(item.Description) + "\n")
		}
	}

	if m.flash != "" {
		b.WriteString("\n" + m.styles.Success.Render(m.flash) + "\n")
	}
	b.WriteString("\n" + m.styles.Help.Render("↑/↓ move • enter add to cart • c cart • t track • R reload • q quit"))
	return b.String()
}

func (m Model) cartView() string {
	state := m.store.State()
	if state.Empty() {
		return m.styles.Muted.Render("Your cart is empty.") + "\n\n" +
			m.styles.Help.Render("m back to menu • q quit")
	}

	var b strings.Builder
	for i, line := range state.Lines() {
		cursor := "  "
		name := line.Item.Name
		if i == m.cartCursor {
			cursor = "> "
			name = m.styles.Selected.Render(name)
		}
		fmt.Fprintf(&b, "%s%s  x%d  %s\n", cursor, name, line.Quantity,
			m.styles.Price.Render(money.Format(cart.LineTotal(line.Item.Price, line.Quantity))))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n\n", m.styles.Price.Render(money.Format(state.Subtotal())))
	b.WriteString(m.styles.Help.Render("+/- quantity • d remove • x clear • enter checkout • m menu"))
	return b.String()
}

func (m Model) checkoutView() string {
	labels := [fieldCount]string{"Name", "Phone", "Address", "Notes"}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Checkout") + "\n\n")
	for i := range m.form {
		fmt.Fprintf(&b, "%s\n%s\n", labels[i], m.form[i].View())
		if msg, ok := m.fieldErrs[fieldKeys[i]]; ok {
			b.WriteString(m.styles.Error.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}

	state := m.store.State()
	fmt.Fprintf(&b, "%d items  Total: %s\n\n", state.TotalItemCount(), m.styles.Price.Render(money.Format(state.Subtotal())))

	switch {
	case m.submitting:
		b.WriteString(m.spinner.View() + " Placing order...\n")
	case m.submitErr != nil:
		b.WriteString(m.styles.Error.Render(submitErrorText(m.submitErr)) + "\n")
	}
	b.WriteString("\n" + m.styles.Help.Render("tab next field • enter place order • esc back to cart"))
	return b.String()
}

func submitErrorText(err error) string {
	if isUnavailable(err) {
		return "Could not reach the kitchen. Your cart is saved; please try again."
	}
	return "Failed to place order: " + err.Error()
}

func (m Model) confirmationView() string {
	if m.order == nil {
		return m.styles.Muted.Render("No order placed yet.")
	}
	return m.receipt + "\n" + m.styles.Help.Render("enter back to menu • t track this order")
}

func (m Model) trackView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Track your order") + "\n\n")
	b.WriteString(m.trackInput.View() + "\n\n")

	switch {
	case m.looking:
		b.WriteString(m.spinner.View() + " Looking up order...\n")
	case m.trackErr != nil:
		b.WriteString(m.styles.Error.Render(lookupErrorText(m.trackErr)) + "\n")
	case m.trackResult != nil:
		b.WriteString(m.resultView(*m.trackResult))
	}
	b.WriteString("\n" + m.styles.Help.Render("enter look up • esc back to menu"))
	return b.String()
}

func lookupErrorText(err error) string {
	var notFound *types.NotFoundError
	switch {
	case isUnavailable(err):
		return "Could not reach the kitchen. Please try again."
	case errors.As(err, &notFound):
		return "Order not found. Please check the order number."
	default:
		return err.Error()
	}
}

func (m Model) resultView(r tracking.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d  %s\n", r.ID, m.styles.Selected.Render(r.Status.Label()))
	b.WriteString(r.Status.Message() + "\n")
	if r.Order != nil {
		b.WriteString("\n")
		for _, item := range r.Order.Items {
			fmt.Fprintf(&b, "  Item #%d x %d\n", item.MenuItemID, item.Quantity)
		}
		fmt.Fprintf(&b, "  Total: %s\n", m.styles.Price.Render(money.FormatCents(r.Order.TotalPrice)))
	}
	return b.String()
}

package tui

import (
	"fmt"
	"strings"

	"github.com/dparedesb/avicola-console/pkg/money"
)

func (m *Model) renderHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Sales History ") + "\n\n")

	if len(m.sales) == 0 {
		b.WriteString(helpStyle.Render("  No sales recorded") + "\n")
	}
	for i, sale := range m.sales {
		cursor := "  "
		customer := "(deleted customer)"
		if sale.Customer != nil {
			customer = sale.Customer.Name
		}
		text := fmt.Sprintf("%s  %-20s %-12s %s",
			sale.Date.Format("2006-01-02"), customer, sale.PaymentMethod, money.Format(sale.TotalAmount))
		if sale.AmountPending > 0 {
			text += pendingStyle.Render(fmt.Sprintf("  pending %s", money.Format(sale.AmountPending)))
		}
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, text))

		if i == m.cursor {
			for _, item := range sale.Items {
				b.WriteString(helpStyle.Render(fmt.Sprintf("      - %s x%d = %s",
					item.ProductName, item.Quantity, money.Format(item.LineTotal))) + "\n")
			}
		}
	}

	b.WriteString("\n" + helpStyle.Render("  up/down browse · esc back"))
	return boxStyle.Render(b.String())
}

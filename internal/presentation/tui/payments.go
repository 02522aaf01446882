package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dparedesb/avicola-console/internal/domain/enum"
	"github.com/dparedesb/avicola-console/internal/infrastructure/api"
	"github.com/dparedesb/avicola-console/pkg/money"
)

func (m *Model) initPaymentForm() {
	m.inputs = make([]textinput.Model, 3)

	m.inputs[0] = textinput.New()
	m.inputs[0].Placeholder = "Customer # (from list below)"
	m.inputs[0].Focus()

	m.inputs[1] = textinput.New()
	m.inputs[1].Placeholder = "Amount"

	m.inputs[2] = textinput.New()
	m.inputs[2].Placeholder = "Method: " + paymentMethodHint()
	m.inputs[2].SetValue(m.cfg.Sales.DefaultPaymentMethod)

	m.focusIndex = 0
}

func paymentMethodHint() string {
	methods := enum.PaymentMethods()
	names := make([]string, len(methods))
	for i, method := range methods {
		names[i] = string(method)
	}
	return strings.Join(names, " / ")
}

func (m *Model) renderPaymentForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Record Payment ") + "\n\n")

	labels := []string{"Customer:", "Amount:", "Method:"}
	for i, input := range m.inputs {
		b.WriteString(fmt.Sprintf("  %s\n", labels[i]))
		b.WriteString(fmt.Sprintf("  %s\n\n", input.View()))
	}

	b.WriteString(helpStyle.Render("  Customers:") + "\n")
	for i, c := range m.customers {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  %2d. %s", i+1, c.Name)) + "\n")
	}

	return boxStyle.Render(b.String())
}

// submitPaymentForm registers a debt payment against a customer.
func (m *Model) submitPaymentForm() tea.Cmd {
	client := m.client
	customers := m.customers
	idxStr := strings.TrimSpace(m.inputs[0].Value())
	amountStr := strings.TrimSpace(m.inputs[1].Value())
	methodStr := strings.TrimSpace(m.inputs[2].Value())

	return func() tea.Msg {
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 1 || idx > len(customers) {
			return formSubmittedMsg{false, "Invalid customer number"}
		}
		amount, err := strconv.ParseInt(amountStr, 10, 64)
		if err != nil || amount <= 0 {
			return formSubmittedMsg{false, "Amount must be a positive number"}
		}
		method := enum.PaymentMethod(methodStr)
		if !method.IsValid() {
			return formSubmittedMsg{false, "Method must be one of: " + paymentMethodHint()}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		input := &api.PaymentInput{
			CustomerID: customers[idx-1].ID,
			Amount:     amount,
			Method:     string(method),
		}
		payment, err := client.CreatePayment(ctx, input)
		if err != nil {
			return formSubmittedMsg{false, err.Error()}
		}
		return formSubmittedMsg{true, fmt.Sprintf("Payment recorded: %s", money.Format(payment.Amount))}
	}
}

func (m *Model) renderPortfolioPick() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Customer Portfolio ") + "\n\n")

	for i, c := range m.customers {
		cursor := "  "
		label := c.Name
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			label = selectedStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, label))
	}

	b.WriteString("\n" + helpStyle.Render("  enter select · esc back"))
	return boxStyle.Render(b.String())
}

func (m *Model) handlePortfolioPickKeys(key string) (tea.Model, tea.Cmd) {
	if key != "enter" || m.cursor >= len(m.customers) {
		return m, nil
	}
	m.selectedItem = m.customers[m.cursor].Name
	m.loading = true
	return m, m.loadPortfolio(m.customers[m.cursor].ID)
}

func (m *Model) renderPortfolio() string {
	var b strings.Builder

	if m.custPortfolio == nil {
		return boxStyle.Render(helpStyle.Render("  No data"))
	}

	b.WriteString(titleStyle.Render(" Portfolio: "+m.selectedItem) + "\n\n")
	b.WriteString(fmt.Sprintf("  Total billed: %s\n", money.Format(m.custPortfolio.TotalBilled)))
	b.WriteString(fmt.Sprintf("  Total paid:   %s\n", money.Format(m.custPortfolio.TotalPaid)))

	balance := money.Format(m.custPortfolio.Balance)
	if m.custPortfolio.Balance > 0 {
		balance = pendingStyle.Render(balance)
	} else {
		balance = successStyle.Render(balance)
	}
	b.WriteString(fmt.Sprintf("  Balance:      %s\n", balance))

	if len(m.custSales) > 0 {
		b.WriteString("\n" + selectedStyle.Render("  Statement:") + "\n")
		for _, sale := range m.custSales {
			line := fmt.Sprintf("    %s  %s", sale.Date.Format("2006-01-02"), money.Format(sale.TotalAmount))
			if sale.AmountPending > 0 {
				line += pendingStyle.Render(fmt.Sprintf("  pending %s", money.Format(sale.AmountPending)))
			} else {
				line += successStyle.Render("  paid")
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("  esc back"))
	return boxStyle.Render(b.String())
}

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

// renderSale renders the sale composition screen.
func (m *Model) renderSale() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" New Sale ") + "\n\n")

	mode := "Walk-in"
	if m.composer.Mode() == enum.SaleModeCredit {
		mode = "Credit"
	}
	b.WriteString(fmt.Sprintf("  Mode: %s\n", selectedStyle.Render(mode)))
	b.WriteString(fmt.Sprintf("  Customer: %s\n", m.customerName(m.composer.CustomerID())))
	b.WriteString(fmt.Sprintf("  Payment: %s\n\n", m.composer.PaymentMethod()))

	lines := m.composer.Lines()
	if len(lines) == 0 {
		b.WriteString(helpStyle.Render("  Cart is empty") + "\n")
	} else {
		for i, line := range lines {
			cursor := "  "
			text := fmt.Sprintf("%-30s x%-5d %s", line.Label, line.Quantity, money.Format(line.LineTotal))
			if i == m.cursor {
				cursor = selectedStyle.Render("> ")
				text = selectedStyle.Render(text)
			}
			b.WriteString(fmt.Sprintf("%s%s\n", cursor, text))
		}
	}

	totals := m.composer.ComputeTotals()
	b.WriteString(fmt.Sprintf("\n  Total:   %s\n", money.Format(totals.TotalAmount)))
	b.WriteString(fmt.Sprintf("  Paid:    %s\n", money.Format(totals.EffectivePaid)))
	if totals.AmountPending > 0 {
		b.WriteString(fmt.Sprintf("  Pending: %s\n", pendingStyle.Render(money.Format(totals.AmountPending))))
	}

	b.WriteString("\n" + helpStyle.Render("  a add item · r remove · m mode · c customer · p payment · y paid · s submit"))
	return boxStyle.Render(b.String())
}

func (m *Model) handleSaleKeys(key string) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch key {
	case "a":
		m.prevView = ViewSale
		m.initAddLineForm()
		m.view = ViewAddLine

	case "r":
		lines := m.composer.Lines()
		if m.cursor < len(lines) {
			m.composer.RemoveLine(lines[m.cursor].Label)
			if m.cursor > 0 {
				m.cursor--
			}
		}

	case "m":
		next := enum.SaleModeCredit
		if m.composer.Mode() == enum.SaleModeCredit {
			next = enum.SaleModeWalkIn
		}
		if err := m.composer.SetSaleMode(next); err != nil {
			m.errText = err.Error()
		} else {
			m.errText = ""
		}

	case "c":
		if m.composer.Mode() == enum.SaleModeCredit {
			m.prevView = ViewSale
			m.cursor = 0
			m.view = ViewPickCustomer
		}

	case "p":
		m.cyclePaymentMethod()

	case "y":
		if m.composer.Mode() == enum.SaleModeCredit {
			m.prevView = ViewSale
			m.initAmountPaidForm()
			m.view = ViewAmountPaid
		}

	case "s":
		req, idempotencyKey, err := m.composer.PrepareSubmission()
		if err != nil {
			m.errText = err.Error()
			return m, nil
		}
		m.loading = true
		m.submitting = true
		return m, m.submitSale(req, idempotencyKey)
	}
	return m, nil
}

// cyclePaymentMethod advances to the next accepted payment method.
func (m *Model) cyclePaymentMethod() {
	methods := enum.PaymentMethods()
	current := m.composer.PaymentMethod()
	for i, method := range methods {
		if method == current {
			next := methods[(i+1)%len(methods)]
			if err := m.composer.SetPaymentMethod(next); err != nil {
				m.errText = err.Error()
			}
			return
		}
	}
	if err := m.composer.SetPaymentMethod(methods[0]); err != nil {
		m.errText = err.Error()
	}
}

func (m *Model) initAddLineForm() {
	m.inputs = make([]textinput.Model, 3)

	m.inputs[0] = textinput.New()
	m.inputs[0].Placeholder = "Product # (from list below)"
	m.inputs[0].Focus()

	m.inputs[1] = textinput.New()
	m.inputs[1].Placeholder = "Format: u (unit) / p (package)"

	m.inputs[2] = textinput.New()
	m.inputs[2].Placeholder = "Quantity"

	m.focusIndex = 0
}

func (m *Model) renderAddLine() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Add Item ") + "\n\n")

	labels := []string{"Product:", "Format:", "Quantity:"}
	for i, input := range m.inputs {
		b.WriteString(fmt.Sprintf("  %s\n", labels[i]))
		b.WriteString(fmt.Sprintf("  %s\n\n", input.View()))
	}

	b.WriteString(helpStyle.Render("  Catalog:") + "\n")
	for i, p := range m.products {
		line := fmt.Sprintf("  %2d. %-25s %s/unit", i+1, p.Name, money.Format(p.UnitPrice))
		if p.HasPackage() {
			line += fmt.Sprintf("  ·  %s x%d %s", p.PackageName, p.PackageUnits, money.Format(p.PackagePrice))
		}
		b.WriteString(helpStyle.Render(line) + "\n")
	}

	return boxStyle.Render(b.String())
}

// submitAddLine validates and stages a new cart line.
func (m *Model) submitAddLine() (tea.Model, tea.Cmd) {
	m.loading = false

	idx, err := strconv.Atoi(strings.TrimSpace(m.inputs[0].Value()))
	if err != nil || idx < 1 || idx > len(m.products) {
		m.errText = "Invalid product number"
		return m, nil
	}
	product := m.products[idx-1]

	format := enum.SaleFormatUnit
	switch strings.ToLower(strings.TrimSpace(m.inputs[1].Value())) {
	case "u", "":
		format = enum.SaleFormatUnit
	case "p":
		format = enum.SaleFormatPackage
	default:
		m.errText = "Format must be u or p"
		return m, nil
	}

	qty, err := strconv.Atoi(strings.TrimSpace(m.inputs[2].Value()))
	if err != nil {
		m.errText = "Invalid quantity"
		return m, nil
	}

	if err := m.composer.AddLine(product.ID, format, qty); err != nil {
		m.errText = err.Error()
		return m, nil
	}

	m.errText = ""
	m.status = ""
	m.cursor = 0
	m.view = ViewSale
	return m, nil
}

func (m *Model) renderPickCustomer() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Select Customer ") + "\n\n")

	for i, c := range m.customers {
		cursor := "  "
		label := c.Name
		if c.IsWalkIn(m.cfg.Sales.WalkInCustomerName) {
			label += helpStyle.Render(" (walk-in)")
		}
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			label = selectedStyle.Render(c.Name)
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, label))
	}

	b.WriteString("\n" + helpStyle.Render("  enter select · esc back"))
	return boxStyle.Render(b.String())
}

func (m *Model) handlePickCustomerKeys(key string) (tea.Model, tea.Cmd) {
	if key != "enter" || m.cursor >= len(m.customers) {
		return m, nil
	}
	if err := m.composer.SetCustomer(m.customers[m.cursor].ID); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.errText = ""
	m.cursor = 0
	m.view = ViewSale
	return m, nil
}

func (m *Model) initAmountPaidForm() {
	m.inputs = make([]textinput.Model, 1)
	m.inputs[0] = textinput.New()
	m.inputs[0].Placeholder = "Amount paid now"
	m.inputs[0].Focus()
	m.focusIndex = 0
}

func (m *Model) renderAmountPaid() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Partial Payment ") + "\n\n")

	totals := m.composer.ComputeTotals()
	b.WriteString(fmt.Sprintf("  Sale total: %s\n\n", money.Format(totals.TotalAmount)))
	b.WriteString("  Amount paid:\n")
	b.WriteString(fmt.Sprintf("  %s\n", m.inputs[0].View()))

	return boxStyle.Render(b.String())
}

func (m *Model) submitAmountPaid() (tea.Model, tea.Cmd) {
	m.loading = false

	amount, err := strconv.ParseInt(strings.TrimSpace(m.inputs[0].Value()), 10, 64)
	if err != nil {
		m.errText = "Invalid amount"
		return m, nil
	}
	if err := m.composer.SetAmountPaid(amount); err != nil {
		m.errText = err.Error()
		return m, nil
	}

	m.errText = ""
	m.view = ViewSale
	return m, nil
}

// submitSale posts a prepared sale to the backend. The command only talks
// to the client; composer state is read and reset exclusively in Update,
// which keeps it single-owner while the request is in flight.
func (m *Model) submitSale(req *api.CreateSaleRequest, idempotencyKey string) tea.Cmd {
	client := m.client
	log := m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sale, err := client.CreateSale(ctx, req, idempotencyKey)
		if err != nil {
			return errorMsg{err}
		}
		inventory, err := client.ListInventory(ctx)
		if err != nil {
			log.WithError(err).Warn("could not refresh inventory snapshot")
			inventory = nil
		}
		return saleSubmittedMsg{sale: sale, inventory: inventory}
	}
}

// customerName resolves a customer id against the cached directory.
func (m *Model) customerName(id string) string {
	for _, c := range m.customers {
		if c.ID == id {
			return c.Name
		}
	}
	if id == "" {
		return helpStyle.Render("(none)")
	}
	return id
}

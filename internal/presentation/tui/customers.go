package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
	"github.com/dparedesb/avicola-console/internal/infrastructure/api"
)

func (m *Model) renderCustomers() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Customers ") + "\n\n")

	if len(m.customers) == 0 {
		b.WriteString(helpStyle.Render("  No customers") + "\n")
	}
	for i, c := range m.customers {
		cursor := "  "
		text := fmt.Sprintf("%-25s %s", c.Name, c.Phone)
		if c.IsWalkIn(m.cfg.Sales.WalkInCustomerName) {
			text += helpStyle.Render("  (walk-in)")
		}
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			text = selectedStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, text))
	}

	b.WriteString("\n" + helpStyle.Render("  n new · e edit · d delete · esc back"))
	return boxStyle.Render(b.String())
}

func (m *Model) handleCustomerKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n":
		m.prevView = ViewCustomers
		m.initCustomerForm(nil)
		m.view = ViewCustomerForm

	case "e":
		if m.cursor < len(m.customers) {
			m.prevView = ViewCustomers
			m.initCustomerForm(&m.customers[m.cursor])
			m.view = ViewCustomerForm
		}

	case "d":
		if m.cursor < len(m.customers) {
			c := m.customers[m.cursor]
			if c.IsWalkIn(m.cfg.Sales.WalkInCustomerName) {
				m.errText = "The walk-in customer cannot be deleted"
				return m, nil
			}
			m.selectedItem = c.ID
			m.confirmAction = "delete_customer"
			m.confirmMsg = fmt.Sprintf("Delete customer %s?", c.Name)
			m.prevView = ViewCustomers
			m.view = ViewConfirmDelete
		}
	}
	return m, nil
}

func (m *Model) initCustomerForm(c *entity.Customer) {
	m.inputs = make([]textinput.Model, 4)

	placeholders := []string{"Name", "Phone (optional)", "Address (optional)", "Notes (optional)"}
	for i, ph := range placeholders {
		m.inputs[i] = textinput.New()
		m.inputs[i].Placeholder = ph
	}
	m.inputs[0].Focus()
	m.focusIndex = 0

	m.formData["customer_id"] = ""
	if c != nil {
		m.formData["customer_id"] = c.ID
		m.inputs[0].SetValue(c.Name)
		m.inputs[1].SetValue(c.Phone)
		m.inputs[2].SetValue(c.Address)
		m.inputs[3].SetValue(c.Notes)
	}
}

func (m *Model) renderCustomerForm() string {
	var b strings.Builder
	title := " Create Customer "
	if m.formData["customer_id"] != "" {
		title = " Edit Customer "
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	labels := []string{"Name:", "Phone:", "Address:", "Notes:"}
	for i, input := range m.inputs {
		b.WriteString(fmt.Sprintf("  %s\n", labels[i]))
		b.WriteString(fmt.Sprintf("  %s\n\n", input.View()))
	}

	return boxStyle.Render(b.String())
}

// submitCustomerForm creates or updates a customer record.
func (m *Model) submitCustomerForm() tea.Cmd {
	client := m.client
	id := m.formData["customer_id"]

	input := &api.CustomerInput{
		Name:    strings.TrimSpace(m.inputs[0].Value()),
		Phone:   strings.TrimSpace(m.inputs[1].Value()),
		Address: strings.TrimSpace(m.inputs[2].Value()),
		Notes:   strings.TrimSpace(m.inputs[3].Value()),
	}

	return func() tea.Msg {
		if input.Name == "" {
			return formSubmittedMsg{false, "Customer name is required"}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if id == "" {
			created, err := client.CreateCustomer(ctx, input)
			if err != nil {
				return formSubmittedMsg{false, err.Error()}
			}
			return formSubmittedMsg{true, fmt.Sprintf("Customer created: %s", created.Name)}
		}

		updated, err := client.UpdateCustomer(ctx, id, input)
		if err != nil {
			return formSubmittedMsg{false, err.Error()}
		}
		return formSubmittedMsg{true, fmt.Sprintf("Customer updated: %s", updated.Name)}
	}
}

// deleteCustomer removes a customer record.
func (m *Model) deleteCustomer(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteCustomer(ctx, id); err != nil {
			return errorMsg{err}
		}
		return actionDoneMsg{"Customer deleted"}
	}
}

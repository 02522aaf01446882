package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
	"github.com/dparedesb/avicola-console/internal/infrastructure/api"
)

func (m *Model) renderInventory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Inventory ") + "\n\n")

	if len(m.inventory) == 0 {
		b.WriteString(helpStyle.Render("  No inventory records") + "\n")
	}
	for i, item := range m.inventory {
		cursor := "  "
		name := "(deleted product)"
		if item.Product != nil {
			name = item.Product.Name
		}
		stock := fmt.Sprintf("%d units", item.CurrentStock)
		if item.CurrentStock <= 0 {
			stock = errorStyle.Render(stock)
		} else if item.CurrentStock < lowStockThreshold {
			stock = warningStyle.Render(stock)
		}
		text := fmt.Sprintf("%-25s %s", name, stock)
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, text))
	}

	b.WriteString("\n" + helpStyle.Render("  a add stock · c correct · esc back"))
	return boxStyle.Render(b.String())
}

// lowStockThreshold marks rows that are about to run out.
const lowStockThreshold = 30

func (m *Model) handleInventoryKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a":
		m.prevView = ViewInventory
		m.initStockForm()
		m.view = ViewStockForm

	case "c":
		if m.cursor < len(m.inventory) {
			item := m.inventory[m.cursor]
			m.prevView = ViewInventory
			m.initCorrectStockForm(item)
			m.view = ViewCorrectStock
		}
	}
	return m, nil
}

func (m *Model) initStockForm() {
	m.inputs = make([]textinput.Model, 2)

	m.inputs[0] = textinput.New()
	m.inputs[0].Placeholder = "Product # (from list below)"
	m.inputs[0].Focus()

	m.inputs[1] = textinput.New()
	m.inputs[1].Placeholder = "Units received"

	m.focusIndex = 0
}

func (m *Model) renderStockForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Add Stock ") + "\n\n")

	labels := []string{"Product:", "Units:"}
	for i, input := range m.inputs {
		b.WriteString(fmt.Sprintf("  %s\n", labels[i]))
		b.WriteString(fmt.Sprintf("  %s\n\n", input.View()))
	}

	b.WriteString(helpStyle.Render("  Catalog:") + "\n")
	for i, p := range m.products {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  %2d. %s", i+1, p.Name)) + "\n")
	}

	return boxStyle.Render(b.String())
}

// submitStockForm registers a stock intake for a product.
func (m *Model) submitStockForm() tea.Cmd {
	client := m.client
	idxStr := strings.TrimSpace(m.inputs[0].Value())
	qtyStr := strings.TrimSpace(m.inputs[1].Value())
	products := m.products

	return func() tea.Msg {
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 1 || idx > len(products) {
			return formSubmittedMsg{false, "Invalid product number"}
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			return formSubmittedMsg{false, "Units must be a positive number"}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		entry := &entity.StockEntry{ProductID: products[idx-1].ID, Quantity: qty}
		item, err := client.AddStock(ctx, entry)
		if err != nil {
			return formSubmittedMsg{false, err.Error()}
		}
		return formSubmittedMsg{true, fmt.Sprintf("Stock updated: %d units", item.CurrentStock)}
	}
}

func (m *Model) initCorrectStockForm(item entity.InventoryItem) {
	m.inputs = make([]textinput.Model, 1)

	m.inputs[0] = textinput.New()
	m.inputs[0].Placeholder = "Corrected stock count"
	m.inputs[0].SetValue(strconv.Itoa(item.CurrentStock))
	m.inputs[0].Focus()
	m.focusIndex = 0

	m.formData["inventory_id"] = item.ID
	m.formData["inventory_name"] = "(deleted product)"
	if item.Product != nil {
		m.formData["inventory_name"] = item.Product.Name
	}
}

func (m *Model) renderCorrectStock() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Correct Stock: "+m.formData["inventory_name"]) + "\n\n")

	b.WriteString("  Current stock:\n")
	b.WriteString(fmt.Sprintf("  %s\n\n", m.inputs[0].View()))
	b.WriteString(helpStyle.Render("  Overwrites the counted stock for this product"))

	return boxStyle.Render(b.String())
}

// submitCorrectStock overwrites the stock count after a physical recount.
func (m *Model) submitCorrectStock() tea.Cmd {
	client := m.client
	id := m.formData["inventory_id"]
	countStr := strings.TrimSpace(m.inputs[0].Value())

	return func() tea.Msg {
		count, err := strconv.Atoi(countStr)
		if err != nil || count < 0 {
			return formSubmittedMsg{false, "Stock count must be zero or more"}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		item, err := client.CorrectStock(ctx, id, &api.StockCorrection{CurrentStock: count})
		if err != nil {
			return formSubmittedMsg{false, err.Error()}
		}
		return formSubmittedMsg{true, fmt.Sprintf("Stock corrected: %d units", item.CurrentStock)}
	}
}

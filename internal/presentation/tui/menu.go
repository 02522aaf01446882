package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type menuEntry struct {
	label string
	view  View
}

var menuEntries = []menuEntry{
	{"New Sale", ViewSale},
	{"Dashboard", ViewDashboard},
	{"Products", ViewProducts},
	{"Customers", ViewCustomers},
	{"Inventory", ViewInventory},
	{"Sales History", ViewHistory},
	{"Record Payment", ViewPaymentForm},
	{"Customer Portfolio", ViewPortfolioPick},
	{"Reports", ViewReportsMenu},
}

func (m *Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" "+m.cfg.App.Name+" ") + "\n\n")

	for i, entry := range menuEntries {
		cursor := "  "
		label := entry.label
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			label = selectedStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, label))
	}

	b.WriteString("\n" + helpStyle.Render("  enter select · g refresh · esc quit"))
	return boxStyle.Render(b.String())
}

func (m *Model) handleMenuKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		entry := menuEntries[m.cursor]
		m.cursor = 0
		m.status = ""
		m.errText = ""
		m.view = entry.view

		switch entry.view {
		case ViewDashboard:
			m.loading = true
			return m, m.loadDashboard()
		case ViewHistory:
			m.loading = true
			return m, m.loadSales()
		case ViewPaymentForm:
			m.prevView = ViewMenu
			m.initPaymentForm()
		}
		return m, nil

	case "g":
		m.loading = true
		return m, m.loadSnapshot()
	}
	return m, nil
}

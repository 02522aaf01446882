package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dparedesb/avicola-console/pkg/money"
)

func (m *Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Dashboard ") + "\n\n")

	if m.kpis != nil {
		b.WriteString(fmt.Sprintf("  Sales today:  %d\n", m.kpis.TotalSalesToday))
		b.WriteString(fmt.Sprintf("  Income today: %s\n", money.Format(m.kpis.TotalIncomeToday)))
		b.WriteString(fmt.Sprintf("  Income month: %s\n", money.Format(m.kpis.TotalIncomeMonth)))
	}
	if m.portfolio != nil {
		b.WriteString(fmt.Sprintf("  Portfolio:    %s\n", pendingStyle.Render(money.Format(m.portfolio.TotalPortfolio))))
	}

	if len(m.alerts) > 0 {
		b.WriteString("\n" + warningStyle.Render("  Low stock:") + "\n")
		for _, alert := range m.alerts {
			b.WriteString(warningStyle.Render(fmt.Sprintf("    %s: %d units", alert.ProductName, alert.Stock)) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("  esc back"))
	return boxStyle.Render(b.String())
}

type reportEntry struct {
	label  string
	action string
}

var reportEntries = []reportEntry{
	{"Sales by date range", "date_range"},
	{"Debtor customers", "debtors"},
	{"Export sales to Excel", "export"},
}

func (m *Model) renderReportsMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Reports ") + "\n\n")

	for i, entry := range reportEntries {
		cursor := "  "
		label := entry.label
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			label = selectedStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, label))
	}

	b.WriteString("\n" + helpStyle.Render("  enter select · esc back"))
	return boxStyle.Render(b.String())
}

func (m *Model) handleReportsKeys(key string) (tea.Model, tea.Cmd) {
	if key != "enter" {
		return m, nil
	}

	switch reportEntries[m.cursor].action {
	case "date_range":
		m.prevView = ViewReportsMenu
		m.initDateRangeForm()
		m.view = ViewDateRangeForm

	case "debtors":
		m.loading = true
		m.view = ViewDebtors
		m.cursor = 0
		return m, m.loadDebtors()

	case "export":
		m.prevView = ViewReportsMenu
		m.initDateRangeForm()
		m.view = ViewExportForm
	}
	return m, nil
}

// initDateRangeForm seeds a start/end date pair defaulting to the current month.
func (m *Model) initDateRangeForm() {
	m.inputs = make([]textinput.Model, 2)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	m.inputs[0] = textinput.New()
	m.inputs[0].Placeholder = "Start date (YYYY-MM-DD)"
	m.inputs[0].SetValue(monthStart.Format("2006-01-02"))
	m.inputs[0].Focus()

	m.inputs[1] = textinput.New()
	m.inputs[1].Placeholder = "End date (YYYY-MM-DD)"
	m.inputs[1].SetValue(now.Format("2006-01-02"))

	m.focusIndex = 0
}

func (m *Model) renderDateRangeForm() string {
	return m.renderDateRange(" Sales by Date Range ")
}

func (m *Model) renderExportForm() string {
	return m.renderDateRange(" Export Sales ")
}

func (m *Model) renderDateRange(title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")

	labels := []string{"Start date:", "End date:"}
	for i, input := range m.inputs {
		b.WriteString(fmt.Sprintf("  %s\n", labels[i]))
		b.WriteString(fmt.Sprintf("  %s\n\n", input.View()))
	}

	return boxStyle.Render(b.String())
}

func (m *Model) dateRange() (string, string, error) {
	start := strings.TrimSpace(m.inputs[0].Value())
	end := strings.TrimSpace(m.inputs[1].Value())

	if _, err := time.Parse("2006-01-02", start); err != nil {
		return "", "", fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", start)
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		return "", "", fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", end)
	}
	return start, end, nil
}

// submitDateRange fetches the sales aggregate for the entered period.
func (m *Model) submitDateRange() tea.Cmd {
	client := m.client
	start, end, err := m.dateRange()

	return func() tea.Msg {
		if err != nil {
			return formSubmittedMsg{false, err.Error()}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		report, err := client.GetSalesByDateRange(ctx, start, end)
		if err != nil {
			return errorMsg{err}
		}
		return dateRangeLoadedMsg{report: report}
	}
}

func (m *Model) renderDateRangeResult() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Sales by Date Range ") + "\n\n")

	if m.rangeReport == nil {
		b.WriteString(helpStyle.Render("  No data") + "\n")
	} else {
		b.WriteString(fmt.Sprintf("  Sales:  %d\n", m.rangeReport.TotalSold))
		b.WriteString(fmt.Sprintf("  Income: %s\n", money.Format(m.rangeReport.TotalIncome)))

		if len(m.rangeReport.UnitsSoldByProduct) > 0 {
			b.WriteString("\n" + selectedStyle.Render("  Units by product:") + "\n")
			for _, row := range m.rangeReport.UnitsSoldByProduct {
				b.WriteString(fmt.Sprintf("    %-25s %d\n", row.ProductName, row.TotalUnits))
			}
		}
	}

	b.WriteString("\n" + helpStyle.Render("  esc back"))
	return boxStyle.Render(b.String())
}

func (m *Model) renderDebtors() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Debtor Customers ") + "\n\n")

	if len(m.debtors) == 0 {
		b.WriteString(successStyle.Render("  No outstanding balances") + "\n")
	}
	for i, debtor := range m.debtors {
		cursor := "  "
		text := fmt.Sprintf("%-25s %-15s %s", debtor.Name, debtor.Phone, pendingStyle.Render(money.Format(debtor.Balance)))
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, text))
	}

	b.WriteString("\n" + helpStyle.Render("  esc back"))
	return boxStyle.Render(b.String())
}

// submitExport downloads the sales workbook and previews its first rows.
func (m *Model) submitExport() tea.Cmd {
	exports := m.exports
	start, end, err := m.dateRange()

	return func() tea.Msg {
		if err != nil {
			return formSubmittedMsg{false, err.Error()}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		path, preview, err := exports.ExportSales(ctx, start, end)
		if err != nil && path == "" {
			return errorMsg{err}
		}
		return exportDoneMsg{path: path, preview: preview}
	}
}

func (m *Model) renderExportResult() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Export Sales ") + "\n\n")

	b.WriteString(successStyle.Render("  Saved: "+m.exportPath) + "\n")

	if len(m.exportPreview) > 0 {
		b.WriteString("\n" + selectedStyle.Render("  Preview:") + "\n")
		for _, row := range m.exportPreview {
			b.WriteString(helpStyle.Render("    "+strings.Join(row, " | ")) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("  esc back"))
	return boxStyle.Render(b.String())
}

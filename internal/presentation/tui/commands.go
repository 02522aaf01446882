package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
)

const requestTimeout = 30 * time.Second

// loadSnapshot refreshes the product, customer and inventory caches.
func (m *Model) loadSnapshot() tea.Cmd {
	snapshots := m.snapshots
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return snapshotLoadedMsg{snapshot: snapshots.LoadAll(ctx)}
	}
}

// loadSales fetches the sale history.
func (m *Model) loadSales() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sales, err := client.ListSales(ctx)
		if err != nil {
			return errorMsg{err}
		}
		return salesLoadedMsg{sales: sales}
	}
}

// loadDashboard fetches the KPI, portfolio and low-stock panels together.
func (m *Model) loadDashboard() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		kpis, err := client.GetDashboardKPIs(ctx)
		if err != nil {
			return errorMsg{err}
		}
		portfolio, err := client.GetTotalPortfolio(ctx)
		if err != nil {
			return errorMsg{err}
		}
		alerts, err := client.GetInventoryAlerts(ctx)
		if err != nil {
			return errorMsg{err}
		}
		return dashboardLoadedMsg{kpis: kpis, portfolio: portfolio, alerts: alerts}
	}
}

// loadPortfolio fetches a customer's balance plus their sales for the
// statement rows. The backend has no per-customer sales endpoint, so the
// history is filtered client-side.
func (m *Model) loadPortfolio(customerID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		portfolio, err := client.GetCustomerPortfolio(ctx, customerID)
		if err != nil {
			return errorMsg{err}
		}
		sales, err := client.ListSales(ctx)
		if err != nil {
			return errorMsg{err}
		}

		var owned []entity.Sale
		for _, sale := range sales {
			if sale.Customer != nil && sale.Customer.ID == customerID {
				owned = append(owned, sale)
			}
		}
		return portfolioLoadedMsg{portfolio: portfolio, sales: owned}
	}
}

// loadDebtors fetches customers with outstanding balances.
func (m *Model) loadDebtors() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		debtors, err := client.GetDebtorCustomers(ctx)
		if err != nil {
			return errorMsg{err}
		}
		return debtorsLoadedMsg{debtors: debtors}
	}
}

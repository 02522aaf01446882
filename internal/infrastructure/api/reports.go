package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
)

// GetDashboardKPIs fetches the dashboard headline figures.
func (c *Client) GetDashboardKPIs(ctx context.Context) (*entity.DashboardKPIs, error) {
	var kpis entity.DashboardKPIs
	if err := c.do(ctx, http.MethodGet, "/reports/dashboard-kpis", nil, nil, &kpis, nil); err != nil {
		return nil, err
	}
	return &kpis, nil
}

// GetTotalPortfolio fetches the aggregate outstanding debt.
func (c *Client) GetTotalPortfolio(ctx context.Context) (*entity.TotalPortfolio, error) {
	var portfolio entity.TotalPortfolio
	if err := c.do(ctx, http.MethodGet, "/reports/total-portfolio", nil, nil, &portfolio, nil); err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// GetInventoryAlerts fetches the low-stock alerts.
func (c *Client) GetInventoryAlerts(ctx context.Context) ([]entity.InventoryAlert, error) {
	var alerts []entity.InventoryAlert
	if err := c.do(ctx, http.MethodGet, "/reports/inventory-alerts", nil, nil, &alerts, nil); err != nil {
		return nil, err
	}
	return alerts, nil
}

// GetCustomerPortfolio fetches a single customer's account balance.
func (c *Client) GetCustomerPortfolio(ctx context.Context, customerID string) (*entity.CustomerPortfolio, error) {
	var portfolio entity.CustomerPortfolio
	path := "/reports/customer-portfolio/" + url.PathEscape(customerID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &portfolio, nil); err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// GetSalesByDateRange fetches the aggregated sales report between two dates
// (inclusive, formatted 2006-01-02).
func (c *Client) GetSalesByDateRange(ctx context.Context, startDate, endDate string) (*entity.DateRangeReport, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	var report entity.DateRangeReport
	if err := c.do(ctx, http.MethodGet, "/reports/sales-by-date", query, nil, &report, nil); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetDebtorCustomers fetches customers with a positive balance.
func (c *Client) GetDebtorCustomers(ctx context.Context) ([]entity.DebtorCustomer, error) {
	var debtors []entity.DebtorCustomer
	if err := c.do(ctx, http.MethodGet, "/reports/debtor-customers", nil, nil, &debtors, nil); err != nil {
		return nil, err
	}
	return debtors, nil
}

// ExportSales downloads the server-generated sales spreadsheet for the date
// range and writes it under destDir. The stream is opaque to the client; it
// is saved byte-for-byte and the written path returned.
func (c *Client) ExportSales(ctx context.Context, startDate, endDate, destDir string) (string, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	body, _, err := c.raw(ctx, http.MethodGet, "/reports/export/sales", query, nil, nil)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	fileName := fmt.Sprintf("Reporte_Ventas_%s_%s.xlsx", startDate, endDate)
	path := filepath.Join(destDir, fileName)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("error writing export file: %w", err)
	}

	return path, nil
}

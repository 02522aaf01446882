package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dparedesb/avicola-console/internal/config"
)

// stubExport plays the backend: it writes a real workbook to destDir the
// way the download would.
type stubExport struct {
	rows [][]interface{}
	err  error
}

func (s *stubExport) ExportSales(_ context.Context, startDate, endDate, destDir string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range s.rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			return "", err
		}
	}
	path := filepath.Join(destDir, "Reporte_Ventas_"+startDate+"_"+endDate+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func TestExportSales_PreviewsFirstRows(t *testing.T) {
	stub := &stubExport{rows: [][]interface{}{
		{"Fecha", "Cliente", "Total"},
		{"2024-03-01", "Tienda Don Luis", 31000},
		{"2024-03-02", "Mostrador", 5000},
		{"2024-03-03", "Mostrador", 2500},
	}}
	svc := NewExportService(stub, config.ExportConfig{Dir: t.TempDir(), PreviewRows: 2})

	path, preview, err := svc.ExportSales(context.Background(), "2024-03-01", "2024-03-31")

	require.NoError(t, err)
	assert.Contains(t, path, "Reporte_Ventas_2024-03-01_2024-03-31.xlsx")
	require.Len(t, preview, 2)
	assert.Equal(t, []string{"Fecha", "Cliente", "Total"}, preview[0])
}

func TestExportSales_DownloadError(t *testing.T) {
	svc := NewExportService(&stubExport{err: errors.New("no sales in range")}, config.ExportConfig{Dir: t.TempDir()})

	_, _, err := svc.ExportSales(context.Background(), "2024-03-01", "2024-03-31")

	assert.Error(t, err)
}

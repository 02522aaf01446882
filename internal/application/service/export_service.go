package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dparedesb/avicola-console/internal/config"
)

// ExportAPI downloads the server-generated sales spreadsheet.
type ExportAPI interface {
	ExportSales(ctx context.Context, startDate, endDate, destDir string) (string, error)
}

// ExportService downloads report exports and builds terminal previews of
// the resulting workbooks. The spreadsheet itself is produced server-side;
// the client only stores and inspects it.
type ExportService struct {
	client ExportAPI
	cfg    config.ExportConfig
}

// NewExportService creates a new export service
func NewExportService(client ExportAPI, cfg config.ExportConfig) *ExportService {
	return &ExportService{client: client, cfg: cfg}
}

// ExportSales downloads the sales export for the date range into the
// configured directory and returns the saved path together with the first
// rows of the workbook for display.
func (s *ExportService) ExportSales(ctx context.Context, startDate, endDate string) (string, [][]string, error) {
	path, err := s.client.ExportSales(ctx, startDate, endDate, s.cfg.Dir)
	if err != nil {
		return "", nil, err
	}

	preview, err := s.previewWorkbook(path)
	if err != nil {
		// The download itself succeeded; report the path without a preview.
		return path, nil, fmt.Errorf("export saved to %s but could not be previewed: %w", path, err)
	}
	return path, preview, nil
}

// previewWorkbook opens a downloaded workbook and returns up to the
// configured number of rows from its first sheet.
func (s *ExportService) previewWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}

	if s.cfg.PreviewRows > 0 && len(rows) > s.cfg.PreviewRows {
		rows = rows[:s.cfg.PreviewRows]
	}
	return rows, nil
}

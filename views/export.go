package views

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	productsSheet = "Products"
	chartSheet    = "Chart"
)

// BrowseWorkbook renders the browse table as an xlsx file.
func BrowseWorkbook(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), productsSheet); err != nil {
		return nil, err
	}

	header := []interface{}{
		"id", "section", "barcode", "description", "expiry_date",
		"expiry_display", "days_remaining", "quantity", "status", "deleted",
	}
	if err := f.SetSheetRow(productsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		line := []interface{}{
			r.ID, r.Section, r.Barcode, r.Description, r.ExpiryDate,
			r.ExpiryDisplay, r.DaysRemaining, r.Quantity, string(r.Status), r.Deleted,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(productsSheet, cell, &line); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r.ID, err)
		}
	}

	return write(f)
}

// ChartWorkbook renders the bucket totals with a column chart next to them.
func ChartWorkbook(buckets []Bucket) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), chartSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"status", "quantity"}
	if err := f.SetSheetRow(chartSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, b := range buckets {
		line := []interface{}{string(b.Status), b.Quantity}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(chartSheet, cell, &line); err != nil {
			return nil, fmt.Errorf("write bucket %s: %w", b.Status, err)
		}
	}

	if len(buckets) > 0 {
		last := len(buckets) + 1
		err := f.AddChart(chartSheet, "D2", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", chartSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", chartSheet, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", chartSheet, last),
			}},
			Title:  []excelize.RichTextRun{{Text: "Quantity by status"}},
			Legend: excelize.ChartLegend{Position: "none"},
		})
		if err != nil {
			return nil, fmt.Errorf("add chart: %w", err)
		}
	}

	return write(f)
}

func write(f *excelize.File) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

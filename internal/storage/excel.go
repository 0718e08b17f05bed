package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// ExportOrderToExcel writes a single order to an .xlsx report and returns its path.
func (s *PostgresStorage) ExportOrderToExcel(ctx context.Context, order Order) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet("Order")
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	vin := order.VINText
	if order.VINPhotoID != "" {
		vin = "фото СТС"
	}
	if order.VINSkipped {
		vin = "пропущен"
	}

	rows := [][2]interface{}{
		{"Order ID", order.ID},
		{"User ID", order.UserID},
		{"Created At", order.CreatedAt.Format("2006-01-02 15:04")},
		{"Status", order.Status},
		{"City", order.City},
		{"Car", fmt.Sprintf("%s %s, %d", order.CarBrand, order.CarModel, order.CarYear)},
		{"VIN", vin},
		{"Engine", fmt.Sprintf("%s л, %s", order.EngineVolume, order.FuelType)},
		{"Contact", fmt.Sprintf("%s %s", order.ContactName, order.ContactPhone)},
	}
	for i, row := range rows {
		f.SetCellValue("Order", fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue("Order", fmt.Sprintf("B%d", i+1), row[1])
	}

	partsStart := len(rows) + 2
	f.SetCellValue("Order", fmt.Sprintf("A%d", partsStart), "Parts")
	for i, part := range order.Parts {
		details := part.Details
		if part.PhotoID != "" {
			details += " (есть фото)"
		}
		f.SetCellValue("Order", fmt.Sprintf("A%d", partsStart+1+i), part.Name)
		f.SetCellValue("Order", fmt.Sprintf("B%d", partsStart+1+i), details)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle("Order", "A1", fmt.Sprintf("A%d", partsStart), style)

	f.SetActiveSheet(index)

	filename := fmt.Sprintf("order_%d_%s.xlsx",
		order.ID,
		order.CreatedAt.Format("20060102_1504"))
	filepath := fmt.Sprintf("reports/%s", filename)

	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	if err := f.SaveAs(filepath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return filepath, nil
}

// ExportAllOrdersToExcel writes every stored order into one .xlsx report.
func (s *PostgresStorage) ExportAllOrdersToExcel(ctx context.Context, filename string) (string, error) {
	const query = `SELECT * FROM orders ORDER BY created_at DESC`
	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return "", fmt.Errorf("failed to fetch orders: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet("Orders")
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{
		"ID", "User ID", "City", "Brand", "Model", "Year",
		"VIN", "Engine Volume", "Fuel", "Parts",
		"Contact Name", "Contact Phone", "Status", "Created At",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue("Orders", cell, header)
	}

	for rowIdx, row := range rows {
		order, err := row.toOrder()
		if err != nil {
			return "", err
		}

		vin := order.VINText
		if order.VINPhotoID != "" {
			vin = "фото СТС"
		}
		if order.VINSkipped {
			vin = "пропущен"
		}

		parts := ""
		for i, part := range order.Parts {
			if i > 0 {
				parts += "; "
			}
			parts += fmt.Sprintf("%s (%s)", part.Name, part.Details)
		}

		data := []interface{}{
			order.ID,
			order.UserID,
			order.City,
			order.CarBrand,
			order.CarModel,
			order.CarYear,
			vin,
			order.EngineVolume,
			order.FuelType,
			parts,
			order.ContactName,
			order.ContactPhone,
			order.Status,
			order.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue("Orders", cell, value)
		}
	}

	f.SetActiveSheet(index)

	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	filepath := fmt.Sprintf("reports/%s.xlsx", filename)
	if err := f.SaveAs(filepath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return filepath, nil
}

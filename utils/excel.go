package utils

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"shopapi/models"
)

// BulkUploadResult summarizes an Excel bulk upload.
type BulkUploadResult struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors"`
}

// UserRow is one data row of a user bulk upload sheet.
type UserRow struct {
	RowNumber int // spreadsheet row, header = 1
	Username  string
	Email     string
	Password  string
}

// ItemRow is one data row of an item bulk upload sheet.
type ItemRow struct {
	RowNumber   int
	Name        string
	Description string
	Price       float64
	Tax         float64
	Err         error // parse error for this row, if any
}

// readSheet opens the first sheet of an xlsx stream and returns its rows.
func readSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// headerIndex maps lower-cased header names to their column index.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseUserRows reads a user bulk upload sheet. Required columns: username,
// email, password.
func ParseUserRows(r io.Reader) ([]UserRow, error) {
	rows, err := readSheet(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("excel file is empty")
	}

	idx := headerIndex(rows[0])
	for _, col := range []string{"username", "email", "password"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("excel file must contain these columns: username, email, password")
		}
	}

	var users []UserRow
	for i, row := range rows[1:] {
		users = append(users, UserRow{
			RowNumber: i + 2,
			Username:  cell(row, idx["username"]),
			Email:     cell(row, idx["email"]),
			Password:  cell(row, idx["password"]),
		})
	}
	return users, nil
}

// ParseItemRows reads an item bulk upload sheet. Required columns: name,
// price. Optional: description, tax.
func ParseItemRows(r io.Reader) ([]ItemRow, error) {
	rows, err := readSheet(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("excel file is empty")
	}

	idx := headerIndex(rows[0])
	for _, col := range []string{"name", "price"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("excel file must contain these columns: name, price")
		}
	}
	descIdx, hasDesc := idx["description"]
	taxIdx, hasTax := idx["tax"]

	var items []ItemRow
	for i, row := range rows[1:] {
		item := ItemRow{
			RowNumber: i + 2,
			Name:      cell(row, idx["name"]),
		}
		if hasDesc {
			item.Description = cell(row, descIdx)
		}

		priceStr := cell(row, idx["price"])
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			item.Err = fmt.Errorf("invalid price %q", priceStr)
		} else {
			item.Price = price
		}

		if hasTax && item.Err == nil {
			if taxStr := cell(row, taxIdx); taxStr != "" {
				tax, err := strconv.ParseFloat(taxStr, 64)
				if err != nil {
					item.Err = fmt.Errorf("invalid tax %q", taxStr)
				} else {
					item.Tax = tax
				}
			}
		}

		items = append(items, item)
	}
	return items, nil
}

// WriteItemsExcel renders items as an xlsx workbook for download.
func WriteItemsExcel(items []models.Item) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := []interface{}{"id", "name", "description", "price", "tax", "created_at"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, item := range items {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			item.ID,
			item.Name,
			item.Description,
			item.Price,
			item.Tax,
			item.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

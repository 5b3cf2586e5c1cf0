// Package spreadsheet adapts xlsx workbooks: the inbound reference
// workbook (stores / colors / recipients sheets) and the outbound order
// file.
package spreadsheet

import (
	"fmt"
	"io"

	"order-intake-bot/internal/model"

	"github.com/xuri/excelize/v2"
)

// Sheet positions in the reference workbook.
const (
	sheetStores     = 0
	sheetColors     = 1
	sheetRecipients = 2
)

// ReadReference parses the three reference sheets. The first row of each
// sheet is a header and is skipped. Column 1 is the display name; the
// recipients sheet carries the contact chat ID in column 2.
func ReadReference(r io.Reader) (map[model.ReferenceKind]model.ReferenceList, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open reference workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 3 {
		return nil, fmt.Errorf("reference workbook has %d sheets, want 3", len(sheets))
	}

	stores, err := readNames(f, sheets[sheetStores])
	if err != nil {
		return nil, err
	}
	colors, err := readNames(f, sheets[sheetColors])
	if err != nil {
		return nil, err
	}
	recipients, err := readRecipients(f, sheets[sheetRecipients])
	if err != nil {
		return nil, err
	}

	return map[model.ReferenceKind]model.ReferenceList{
		model.ReferenceStores:     stores,
		model.ReferenceColors:     colors,
		model.ReferenceRecipients: recipients,
	}, nil
}

func readNames(f *excelize.File, sheet string) (model.ReferenceList, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	list := model.ReferenceList{}
	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] == "" {
			continue
		}
		list = append(list, model.ReferenceRow{DisplayName: row[0]})
	}
	return list, nil
}

func readRecipients(f *excelize.File, sheet string) (model.ReferenceList, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	list := model.ReferenceList{}
	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] == "" {
			continue
		}
		contact := ""
		if len(row) > 1 {
			contact = row[1]
		}
		list = append(list, model.ReferenceRow{
			DisplayName: row[0],
			Payload:     map[string]string{model.PayloadContact: contact},
		})
	}
	return list, nil
}

// WriteOrders serializes the flattened order rows into a single-sheet
// workbook: header row plus one row per product.
func WriteOrders(rows []model.OrderRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(model.OrderColumns))
	for i, col := range model.OrderColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cells := row.Values()
		values := make([]interface{}, len(cells))
		for j, v := range cells {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

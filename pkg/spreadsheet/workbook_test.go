package spreadsheet

import (
	"bytes"
	"testing"

	"order-intake-bot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildReferenceWorkbook(t *testing.T, stores, colors []string, recipients [][2]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Stores"))
	_, err := f.NewSheet("Colors")
	require.NoError(t, err)
	_, err = f.NewSheet("Recipients")
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue("Stores", "A1", "name"))
	for i, s := range stores {
		require.NoError(t, f.SetCellValue("Stores", cell(t, 1, i+2), s))
	}
	require.NoError(t, f.SetCellValue("Colors", "A1", "name"))
	for i, c := range colors {
		require.NoError(t, f.SetCellValue("Colors", cell(t, 1, i+2), c))
	}
	require.NoError(t, f.SetCellValue("Recipients", "A1", "ism"))
	require.NoError(t, f.SetCellValue("Recipients", "B1", "telegram_id"))
	for i, r := range recipients {
		require.NoError(t, f.SetCellValue("Recipients", cell(t, 1, i+2), r[0]))
		require.NoError(t, f.SetCellValue("Recipients", cell(t, 2, i+2), r[1]))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func cell(t *testing.T, col, row int) string {
	t.Helper()
	name, err := excelize.CoordinatesToCellName(col, row)
	require.NoError(t, err)
	return name
}

func TestReadReference(t *testing.T) {
	data := buildReferenceWorkbook(t,
		[]string{"Bazaar A", "Bazaar B"},
		[]string{"Red", "Blue", "Green"},
		[][2]string{{"Warehouse", "1001"}, {"Manager", "1002"}},
	)

	lists, err := ReadReference(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, lists[model.ReferenceStores], 2)
	assert.Equal(t, "Bazaar A", lists[model.ReferenceStores][0].DisplayName)

	require.Len(t, lists[model.ReferenceColors], 3)
	assert.Equal(t, "Green", lists[model.ReferenceColors][2].DisplayName)

	require.Len(t, lists[model.ReferenceRecipients], 2)
	assert.Equal(t, "Warehouse", lists[model.ReferenceRecipients][0].DisplayName)
	assert.Equal(t, "1001", lists[model.ReferenceRecipients][0].Payload[model.PayloadContact])
}

func TestReadReferenceRejectsMissingSheets(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = ReadReference(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}

func TestWriteOrders(t *testing.T) {
	rows := []model.OrderRow{
		{
			UserName:      "Alice",
			Store:         "Bazaar A",
			ShopID:        "S1",
			OwnerName:     "Jane",
			OwnerPhone:    "555",
			ProductCode:   "C1",
			ProductColor:  "Red",
			BadgeQuantity: "50",
			SizeRange:     "S-XL",
			Price:         "9.99",
			ImageFileID:   "file-1",
		},
		{
			UserName:     "Alice",
			Store:        "Bazaar A",
			ProductCode:  "C1",
			ProductColor: "Blue",
			ImageFileID:  "file-1",
		},
	}

	data, err := WriteOrders(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	got, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, got, 3) // header + 2 products

	assert.Equal(t, model.OrderColumns, got[0])
	assert.Equal(t, rows[0].Values(), got[1])
	assert.Equal(t, "Blue", got[2][6])
}

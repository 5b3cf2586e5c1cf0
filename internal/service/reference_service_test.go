package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"order-intake-bot/internal/model"
	"order-intake-bot/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// nopLogger satisfies logger.ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}

func referenceWorkbook(t *testing.T, stores, colors []string, recipients [][2]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Stores"))
	for _, sheet := range []string{"Colors", "Recipients"} {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}

	write := func(sheet string, col, row int, value string) {
		cell, err := excelize.CoordinatesToCellName(col, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, value))
	}

	write("Stores", 1, 1, "name")
	for i, s := range stores {
		write("Stores", 1, i+2, s)
	}
	write("Colors", 1, 1, "name")
	for i, c := range colors {
		write("Colors", 1, i+2, c)
	}
	write("Recipients", 1, 1, "ism")
	write("Recipients", 2, 1, "telegram_id")
	for i, r := range recipients {
		write("Recipients", 1, i+2, r[0])
		write("Recipients", 2, i+2, r[1])
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestEnsureLoadedRetriesAfterFailure(t *testing.T) {
	workbook := referenceWorkbook(t,
		[]string{"Bazaar A", "Bazaar B"},
		[]string{"Red"},
		[][2]string{{"Warehouse", "1001"}},
	)

	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(workbook)
	}))
	defer srv.Close()

	ref := NewReferenceService(srv.URL, nopLogger{})

	err := ref.EnsureLoaded(context.Background())
	require.Error(t, err)
	assert.False(t, ref.Loaded())

	_, err = ref.List(model.ReferenceStores)
	assert.ErrorIs(t, err, ErrNotLoaded)

	// The failed attempt leaves the cache unloaded; the next action retries.
	fail.Store(false)
	require.NoError(t, ref.EnsureLoaded(context.Background()))
	assert.True(t, ref.Loaded())

	count, err := ref.Count(model.ReferenceStores)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestEnsureLoadedIsSingleFlight(t *testing.T) {
	workbook := referenceWorkbook(t,
		[]string{"Bazaar A"},
		[]string{"Red"},
		[][2]string{{"Warehouse", "1001"}},
	)

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write(workbook)
	}))
	defer srv.Close()

	ref := NewReferenceService(srv.URL, nopLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, ref.EnsureLoaded(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), requests.Load(), "concurrent first-time users must not trigger duplicate fetches")
}

func TestRowAtBounds(t *testing.T) {
	workbook := referenceWorkbook(t,
		[]string{"Bazaar A", "Bazaar B"},
		[]string{"Red"},
		[][2]string{{"Warehouse", "1001"}},
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(workbook)
	}))
	defer srv.Close()

	ref := NewReferenceService(srv.URL, nopLogger{})
	require.NoError(t, ref.EnsureLoaded(context.Background()))

	row, err := ref.RowAt(model.ReferenceRecipients, 0)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse", row.DisplayName)
	assert.Equal(t, "1001", row.Payload[model.PayloadContact])

	_, err = ref.RowAt(model.ReferenceStores, 2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = ref.RowAt(model.ReferenceStores, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestEnsureLoadedSurfacesParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not a workbook")
	}))
	defer srv.Close()

	ref := NewReferenceService(srv.URL, nopLogger{})

	err := ref.EnsureLoaded(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotLoaded))
	assert.False(t, ref.Loaded())
}

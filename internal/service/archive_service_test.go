package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveConsumerWritesWorkbookCopy(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	dir := t.TempDir()
	archive := NewArchiveService(pubSub, "ORDER_FINALIZED", dir, "", nil, nopLogger{})
	require.NoError(t, archive.Consume(context.Background()))

	publisher := NewPublisherService("ORDER_FINALIZED", pubSub)
	payload := []byte("workbook bytes")
	require.NoError(t, publisher.PublishOrderFinalized(context.Background(), map[string]string{
		MetaFilename:     "order_42.xlsx",
		MetaRequesterID:  "42",
		MetaUserName:     "Alice",
		MetaStore:        "Bazaar A",
		MetaProductCount: "1",
	}, payload))

	var archived string
	require.Eventually(t, func() bool {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) == 0 {
			return false
		}
		archived = entries[0].Name()
		return true
	}, 5*time.Second, 10*time.Millisecond, "consumer never wrote the archive copy")

	// One file per order: "<orderID>_<filename>".
	assert.True(t, strings.HasSuffix(archived, "_order_42.xlsx"), "unexpected archive name %q", archived)

	got, err := os.ReadFile(filepath.Join(dir, archived))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"order-intake-bot/internal/model"
	"order-intake-bot/internal/pkg/logger"
	"order-intake-bot/pkg/spreadsheet"
)

type IReferenceService interface {
	// EnsureLoaded fetches and parses the remote workbook unless a prior
	// call already succeeded. A failed load leaves the cache unloaded so
	// the next user action retries.
	EnsureLoaded(ctx context.Context) error
	Loaded() bool
	List(kind model.ReferenceKind) (model.ReferenceList, error)
	RowAt(kind model.ReferenceKind, index int) (model.ReferenceRow, error)
	Count(kind model.ReferenceKind) (int, error)
}

type referenceService struct {
	url    string
	client *http.Client
	logger logger.ILogger

	mu    sync.Mutex
	lists map[model.ReferenceKind]model.ReferenceList // nil until loaded
}

func NewReferenceService(url string, sysLogger logger.ILogger) IReferenceService {
	return &referenceService{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: sysLogger,
	}
}

func (s *referenceService) EnsureLoaded(ctx context.Context) error {
	// Held for the whole fetch: concurrent first-time users wait here
	// instead of firing duplicate downloads.
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lists != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("build reference request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("reference", "Failed to fetch reference workbook", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("fetch reference workbook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("reference", "Reference source returned non-200", map[string]interface{}{"status": resp.StatusCode})
		return fmt.Errorf("fetch reference workbook: unexpected status %d", resp.StatusCode)
	}

	lists, err := spreadsheet.ReadReference(resp.Body)
	if err != nil {
		s.logger.Error("reference", "Failed to parse reference workbook", map[string]interface{}{"error": err.Error()})
		return err
	}

	s.lists = lists
	s.logger.Info("reference", "Reference data loaded", map[string]interface{}{
		"stores":     len(lists[model.ReferenceStores]),
		"colors":     len(lists[model.ReferenceColors]),
		"recipients": len(lists[model.ReferenceRecipients]),
	})
	return nil
}

func (s *referenceService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists != nil
}

func (s *referenceService) List(kind model.ReferenceKind) (model.ReferenceList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lists == nil {
		return nil, ErrNotLoaded
	}
	return s.lists[kind], nil
}

func (s *referenceService) RowAt(kind model.ReferenceKind, index int) (model.ReferenceRow, error) {
	list, err := s.List(kind)
	if err != nil {
		return model.ReferenceRow{}, err
	}
	if index < 0 || index >= len(list) {
		return model.ReferenceRow{}, fmt.Errorf("%w: %s[%d] of %d", ErrIndexOutOfRange, kind, index, len(list))
	}
	return list[index], nil
}

func (s *referenceService) Count(kind model.ReferenceKind) (int, error) {
	list, err := s.List(kind)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

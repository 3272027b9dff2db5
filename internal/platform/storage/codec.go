package storage

import (
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
)

// emptySnapshot is returned when there is no stored snapshot yet.
func emptySnapshot() *models.Snapshot {
	return &models.Snapshot{Products: []models.Product{}}
}

func encodeSnapshot(snapshot *models.Snapshot) ([]byte, error) {
	s := *snapshot
	if s.Products == nil {
		s.Products = []models.Product{}
	}

	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: can't encode snapshot: %w", ErrPersistence, err)
	}

	return body, nil
}

func decodeSnapshot(body []byte) (*models.Snapshot, error) {
	snapshot := emptySnapshot()
	if err := json.Unmarshal(body, snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	if snapshot.Products == nil {
		snapshot.Products = []models.Product{}
	}

	return snapshot, nil
}

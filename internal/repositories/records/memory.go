package records

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dsmelov/passvault/internal/common"
	"github.com/dsmelov/passvault/internal/models"
)

// MemoryRepository is an in-memory Repository used by tests and by callers
// that run without a MongoDB deployment. Records keep insertion order.
// Safe for concurrent use.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []models.SecretRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, owner, label, ciphertext string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	record := models.SecretRecord{
		ID:         uuid.NewString(),
		Owner:      owner,
		Label:      label,
		Ciphertext: ciphertext,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.records = append(r.records, record)
	return record.ID, nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, owner string) ([]models.SecretRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.SecretRecord{}
	for _, record := range r.records {
		if record.Owner == owner {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.SecretRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.ID == id {
			record := record
			return &record, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Update(ctx context.Context, id, label, ciphertext string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].Label = label
			r.records[i].Ciphertext = ciphertext
			r.records[i].UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

package users

import (
	"context"
	"sync"

	"github.com/dsmelov/passvault/internal/common"
	"github.com/dsmelov/passvault/internal/models"
)

// MemoryRepository is an in-memory Repository used by tests and by callers
// that run without a Redis deployment. Safe for concurrent use.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]models.Account)}
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.Username]; ok {
		return common.ErrorAlreadyExists
	}
	r.accounts[account.Username] = *account
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &account, nil
}

func (r *MemoryRepository) Exists(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.accounts[username]
	return ok, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[username]; !ok {
		return false, nil
	}
	delete(r.accounts, username)
	return true, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	usernames := make([]string, 0, len(r.accounts))
	for username := range r.accounts {
		usernames = append(usernames, username)
	}
	return usernames, nil
}

package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/user-service/internal/domain"
)

type memoryUserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byEmail map[string]domain.User
	now     func() time.Time
}

// NewMemoryUserRepository returns a process-local store used when no database is configured.
// Like the Postgres table it rejects a second user with the same email.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byEmail: make(map[string]domain.User),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *memoryUserRepository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	saved := *user
	saved.UserID = r.nextID
	saved.CreatedAt = r.now()
	r.byEmail[saved.Email] = saved
	return &saved, nil
}

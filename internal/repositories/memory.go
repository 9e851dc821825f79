package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/cv-ranker/internal/models"
)

// MemoryJobDescriptionRepository keeps job descriptions in process memory.
// Used for offline ranking and tests.
type MemoryJobDescriptionRepository struct {
	mu  sync.RWMutex
	jds []models.JobDescription
}

var _ JobDescriptionRepository = (*MemoryJobDescriptionRepository)(nil)

func NewMemoryJobDescriptionRepository(jds ...models.JobDescription) *MemoryJobDescriptionRepository {
	return &MemoryJobDescriptionRepository{jds: append([]models.JobDescription(nil), jds...)}
}

func (r *MemoryJobDescriptionRepository) Create(jd *models.JobDescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jds = append(r.jds, *jd)
	return nil
}

func (r *MemoryJobDescriptionRepository) FindLatest() (*models.JobDescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.jds) == 0 {
		return nil, fmt.Errorf("latest job description: %w", ErrNotFound)
	}

	latest := r.jds[0]
	for _, jd := range r.jds[1:] {
		if jd.CreatedAt.After(latest.CreatedAt) {
			latest = jd
		}
	}
	return &latest, nil
}

func (r *MemoryJobDescriptionRepository) FindByDescription(description string) (*models.JobDescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, jd := range r.jds {
		if jd.Description != nil && *jd.Description == description {
			found := jd
			return &found, nil
		}
	}
	return nil, fmt.Errorf("job description: %w", ErrNotFound)
}

func (r *MemoryJobDescriptionRepository) List(offset, limit int) ([]models.JobDescription, error) {
	r.mu.RLock()
	sorted := append([]models.JobDescription(nil), r.jds...)
	r.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if offset >= len(sorted) {
		return []models.JobDescription{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (r *MemoryJobDescriptionRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.jds)), nil
}

// MemoryCVRepository keeps CV records in process memory.
type MemoryCVRepository struct {
	mu  sync.RWMutex
	cvs []models.CVRecord
}

var _ CVRepository = (*MemoryCVRepository)(nil)

func NewMemoryCVRepository(cvs ...models.CVRecord) *MemoryCVRepository {
	return &MemoryCVRepository{cvs: append([]models.CVRecord(nil), cvs...)}
}

func (r *MemoryCVRepository) Create(cv *models.CVRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.cvs {
		if existing.OriginalFilename == cv.OriginalFilename {
			return fmt.Errorf("failed to create cv record: duplicate original filename %q", cv.OriginalFilename)
		}
	}
	r.cvs = append(r.cvs, *cv)
	return nil
}

func (r *MemoryCVRepository) FindAll() ([]models.CVRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.CVRecord(nil), r.cvs...), nil
}

func (r *MemoryCVRepository) FindByOriginalFilename(name string) (*models.CVRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cv := range r.cvs {
		if cv.OriginalFilename == name {
			found := cv
			return &found, nil
		}
	}
	return nil, fmt.Errorf("cv %q: %w", name, ErrNotFound)
}

func (r *MemoryCVRepository) DeleteAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.cvs))
	r.cvs = nil
	return n, nil
}

// MemoryUserRepository keeps accounts in process memory.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func NewMemoryUserRepository(users ...models.User) *MemoryUserRepository {
	return &MemoryUserRepository{users: append([]models.User(nil), users...)}
}

func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("failed to create user: duplicate email %q", user.Email)
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *MemoryUserRepository) FindByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
}

func (r *MemoryUserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

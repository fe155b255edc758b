// Package memory provides mutex-guarded in-process repositories. They back the
// service when no Postgres DSN is configured and in handler tests, and they
// enforce the same uniqueness rules as the SQL schema.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/repository"
)

// NewID mirrors the SQL column default: 24 lowercase hex characters.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

// Store holds every collection behind a single lock.
type Store struct {
	mu        sync.RWMutex
	accounts  map[domain.Role]map[string]domain.Account
	courses   map[string]domain.Course
	purchases map[string]domain.Purchase
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts: map[domain.Role]map[string]domain.Account{
			domain.RoleAdmin: {},
			domain.RoleUser:  {},
		},
		courses:   map[string]domain.Course{},
		purchases: map[string]domain.Purchase{},
	}
}

// Accounts returns the account repository for role.
func (s *Store) Accounts(role domain.Role) repository.AccountRepository {
	return &accountRepository{store: s, role: role}
}

// Courses returns the course repository.
func (s *Store) Courses() repository.CourseRepository {
	return &courseRepository{store: s}
}

// Purchases returns the purchase repository.
func (s *Store) Purchases() repository.PurchaseRepository {
	return &purchaseRepository{store: s}
}

type accountRepository struct {
	store *Store
	role  domain.Role
}

func (r *accountRepository) Create(_ context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	accounts := r.store.accounts[r.role]
	for _, existing := range accounts {
		if existing.Email == account.Email {
			return repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	account.ID = NewID()
	account.CreatedAt, account.UpdatedAt = now, now
	accounts[account.ID] = *account
	return nil
}

func (r *accountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, existing := range r.store.accounts[r.role] {
		if existing.Email == email {
			account := existing
			return &account, nil
		}
	}
	return nil, repository.ErrNotFound
}

type courseRepository struct {
	store *Store
}

func (r *courseRepository) Create(_ context.Context, course *domain.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	course.ID = NewID()
	course.CreatedAt, course.UpdatedAt = now, now
	r.store.courses[course.ID] = *course
	return nil
}

func (r *courseRepository) GetByID(_ context.Context, id string) (*domain.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	course, ok := r.store.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &course, nil
}

func (r *courseRepository) Update(_ context.Context, course *domain.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.courses[course.ID]
	if !ok {
		return repository.ErrNotFound
	}
	course.CreatorID = existing.CreatorID
	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = time.Now().UTC()
	r.store.courses[course.ID] = *course
	return nil
}

func (r *courseRepository) DeleteOwned(_ context.Context, id, creatorID string) (*domain.Course, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	course, ok := r.store.courses[id]
	if !ok || course.CreatorID != creatorID {
		return nil, repository.ErrNotFound
	}
	delete(r.store.courses, id)
	return &course, nil
}

func (r *courseRepository) ListByCreator(_ context.Context, creatorID string) ([]domain.Course, error) {
	return r.filter(func(c domain.Course) bool { return c.CreatorID == creatorID }), nil
}

func (r *courseRepository) ListAll(_ context.Context) ([]domain.Course, error) {
	return r.filter(func(domain.Course) bool { return true }), nil
}

func (r *courseRepository) ListByIDs(_ context.Context, ids []string) ([]domain.Course, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.filter(func(c domain.Course) bool {
		_, ok := wanted[c.ID]
		return ok
	}), nil
}

func (r *courseRepository) filter(keep func(domain.Course) bool) []domain.Course {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := []domain.Course{}
	for _, course := range r.store.courses {
		if keep(course) {
			result = append(result, course)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

type purchaseRepository struct {
	store *Store
}

func (r *purchaseRepository) Create(_ context.Context, purchase *domain.Purchase) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.purchases {
		if existing.UserID == purchase.UserID && existing.CourseID == purchase.CourseID {
			return repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	purchase.ID = NewID()
	purchase.CreatedAt, purchase.UpdatedAt = now, now
	r.store.purchases[purchase.ID] = *purchase
	return nil
}

func (r *purchaseRepository) Exists(_ context.Context, userID, courseID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, existing := range r.store.purchases {
		if existing.UserID == userID && existing.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *purchaseRepository) ListByUser(_ context.Context, userID string) ([]domain.Purchase, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := []domain.Purchase{}
	for _, p := range r.store.purchases {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"recipebox/internal/domain"

	"github.com/google/uuid"
)

// DB implements an in-memory database storage.
type DB struct {
	mu      sync.Mutex
	users   []*domain.User
	recipes []domain.Recipe
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.RecipeRepository = (*RecipeRepo)(nil)

// --- UserRepository ---

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new user, enforcing email uniqueness.
func (db *DB) Create(ctx context.Context, email, passwordHash, name string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}

	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	cp := *u
	return &cp, nil
}

// --- RecipeRepository ---

// RecipeRepo adapts DB to domain.RecipeRepository. DB itself already uses
// Create for users, so recipes live behind a separate repo view.
type RecipeRepo struct {
	db *DB
}

// NewRecipeRepo wraps the DB as a RecipeRepository.
func (db *DB) NewRecipeRepo() *RecipeRepo {
	return &RecipeRepo{db: db}
}

// Create stores a copy of the recipe.
func (r *RecipeRepo) Create(ctx context.Context, rec *domain.Recipe) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cp := *rec
	cp.Ingredients = append([]string(nil), rec.Ingredients...)
	r.db.recipes = append(r.db.recipes, cp)
	return nil
}

// ListByOwner returns the owner's recipes, newest first.
func (r *RecipeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Recipe, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := []domain.Recipe{}
	for i := range r.db.recipes {
		if rec := &r.db.recipes[i]; rec.OwnedBy(ownerID) {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetByID returns the recipe matching both id and owner, or nil.
func (r *RecipeRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Recipe, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.recipes {
		rec := &r.db.recipes[i]
		if rec.ID == id && rec.OwnedBy(ownerID) {
			cp := *rec
			cp.Ingredients = append([]string(nil), rec.Ingredients...)
			return &cp, nil
		}
	}
	return nil, nil
}

// Update replaces the stored recipe matching (id, owner).
func (r *RecipeRepo) Update(ctx context.Context, rec *domain.Recipe) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.recipes {
		stored := &r.db.recipes[i]
		if stored.ID == rec.ID && stored.OwnedBy(rec.OwnerID) {
			cp := *rec
			cp.Ingredients = append([]string(nil), rec.Ingredients...)
			cp.CreatedAt = stored.CreatedAt
			r.db.recipes[i] = cp
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the recipe matching (id, owner).
func (r *RecipeRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.recipes {
		rec := &r.db.recipes[i]
		if rec.ID == id && rec.OwnedBy(ownerID) {
			r.db.recipes = append(r.db.recipes[:i], r.db.recipes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

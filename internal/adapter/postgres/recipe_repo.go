package postgres

import (
	"context"
	"database/sql"
	"errors"

	"recipebox/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RecipeRepo implements recipe repository operations on DB.
type RecipeRepo struct {
	db *DB
}

// NewRecipeRepo wraps a DB as a RecipeRepository.
func NewRecipeRepo(db *DB) *RecipeRepo {
	return &RecipeRepo{db: db}
}

// Create inserts a new recipe row.
func (p *RecipeRepo) Create(ctx context.Context, r *domain.Recipe) error {
	_, err := p.db.sql.ExecContext(ctx,
		"INSERT INTO recipes (id, owner_id, name, cuisine, ingredients, instructions, cooking_time, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		r.ID, r.OwnerID, r.Name, r.Cuisine, pq.Array(r.Ingredients), r.Instructions, r.CookingTime, r.CreatedAt, r.UpdatedAt,
	)
	return err
}

// ListByOwner returns all recipes owned by ownerID, newest first.
func (p *RecipeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Recipe, error) {
	rows, err := p.db.sql.QueryContext(ctx,
		"SELECT id, owner_id, name, cuisine, ingredients, instructions, cooking_time, created_at, updated_at FROM recipes WHERE owner_id = $1 ORDER BY created_at DESC",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.Recipe{}
	for rows.Next() {
		var r domain.Recipe
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Cuisine, pq.Array(&r.Ingredients), &r.Instructions, &r.CookingTime, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetByID returns the recipe matching both id and owner, or nil.
func (p *RecipeRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Recipe, error) {
	var r domain.Recipe
	err := p.db.sql.QueryRowContext(ctx,
		"SELECT id, owner_id, name, cuisine, ingredients, instructions, cooking_time, created_at, updated_at FROM recipes WHERE id = $1 AND owner_id = $2",
		id, ownerID,
	).Scan(&r.ID, &r.OwnerID, &r.Name, &r.Cuisine, pq.Array(&r.Ingredients), &r.Instructions, &r.CookingTime, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Update writes the full set of mutable fields in one statement scoped by
// (id, owner_id) and reports whether a row matched.
func (p *RecipeRepo) Update(ctx context.Context, r *domain.Recipe) (bool, error) {
	res, err := p.db.sql.ExecContext(ctx,
		"UPDATE recipes SET name = $1, cuisine = $2, ingredients = $3, instructions = $4, cooking_time = $5, updated_at = $6 WHERE id = $7 AND owner_id = $8",
		r.Name, r.Cuisine, pq.Array(r.Ingredients), r.Instructions, r.CookingTime, r.UpdatedAt, r.ID, r.OwnerID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes the recipe matching (id, owner_id) and reports whether a
// row matched.
func (p *RecipeRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	res, err := p.db.sql.ExecContext(ctx, "DELETE FROM recipes WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

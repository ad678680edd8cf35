package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Recipe represents a single recipe owned by exactly one user.
type Recipe struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"ownerId"`
	Name         string    `json:"name"`
	Cuisine      string    `json:"cuisine"`
	Ingredients  []string  `json:"ingredients"`
	Instructions string    `json:"instructions"`
	CookingTime  string    `json:"cookingTime"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the recipe belongs to the given user. Every read,
// update, and delete must pass this check; a recipe is never visible outside
// its owner.
func (r *Recipe) OwnedBy(userID uuid.UUID) bool {
	return r.OwnerID == userID
}

// RecipePatch carries a partial update. Nil fields keep their stored value.
type RecipePatch struct {
	Name         *string  `json:"name"`
	Cuisine      *string  `json:"cuisine"`
	Ingredients  []string `json:"ingredients"`
	Instructions *string  `json:"instructions"`
	CookingTime  *string  `json:"cookingTime"`
}

// RecipeRepository defines the port for recipe persistence. GetByID returns
// (nil, nil) when no recipe matches both id and owner; Update and Delete
// report whether a row matched.
type RecipeRepository interface {
	Create(ctx context.Context, r *Recipe) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Recipe, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Recipe, error)
	Update(ctx context.Context, r *Recipe) (bool, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

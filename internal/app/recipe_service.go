package app

import (
	"context"
	"time"

	"recipebox/internal/domain"

	"github.com/google/uuid"
)

// RecipeDraft carries the user-supplied fields of a new recipe.
type RecipeDraft struct {
	Name         string
	Cuisine      string
	Ingredients  []string
	Instructions string
	CookingTime  string
}

// RecipeService encapsulates the recipe use cases. Every operation is scoped
// to the authenticated owner; the owner id always comes from the verified
// session, never from request input.
type RecipeService struct {
	recipes domain.RecipeRepository
}

// NewRecipeService creates a RecipeService backed by the given repository.
func NewRecipeService(recipes domain.RecipeRepository) *RecipeService {
	return &RecipeService{recipes: recipes}
}

// Create validates and persists a new recipe owned by ownerID.
func (s *RecipeService) Create(ctx context.Context, ownerID uuid.UUID, draft RecipeDraft) (*domain.Recipe, error) {
	if draft.Name == "" || draft.Cuisine == "" || len(draft.Ingredients) == 0 ||
		draft.Instructions == "" || draft.CookingTime == "" {
		return nil, domain.Validation("all fields are required")
	}

	now := time.Now().UTC()
	r := &domain.Recipe{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         draft.Name,
		Cuisine:      draft.Cuisine,
		Ingredients:  draft.Ingredients,
		Instructions: draft.Instructions,
		CookingTime:  draft.CookingTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.recipes.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns all recipes owned by ownerID.
func (s *RecipeService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Recipe, error) {
	return s.recipes.ListByOwner(ctx, ownerID)
}

// Get returns the recipe matching both id and owner. A recipe that exists
// but belongs to someone else reports not-found.
func (s *RecipeService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Recipe, error) {
	r, err := s.recipes.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRecipeNotFound
	}
	return r, nil
}

// Update applies the provided patch fields to the recipe matching (id,
// ownerID) and writes the merged record back in a single owner-scoped
// update. Omitted fields keep their stored value.
func (s *RecipeService) Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.RecipePatch) (*domain.Recipe, error) {
	r, err := s.recipes.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRecipeNotFound
	}

	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Cuisine != nil {
		r.Cuisine = *patch.Cuisine
	}
	if patch.Ingredients != nil {
		r.Ingredients = patch.Ingredients
	}
	if patch.Instructions != nil {
		r.Instructions = *patch.Instructions
	}
	if patch.CookingTime != nil {
		r.CookingTime = *patch.CookingTime
	}
	if r.Name == "" || r.Cuisine == "" || len(r.Ingredients) == 0 ||
		r.Instructions == "" || r.CookingTime == "" {
		return nil, domain.Validation("recipe fields cannot be empty")
	}
	r.UpdatedAt = time.Now().UTC()

	matched, err := s.recipes.Update(ctx, r)
	if err != nil {
		return nil, err
	}
	if !matched {
		// Deleted between the read and the write.
		return nil, domain.ErrRecipeNotFound
	}
	return r, nil
}

// Delete removes the recipe matching (id, ownerID).
func (s *RecipeService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	matched, err := s.recipes.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !matched {
		return domain.ErrRecipeNotFound
	}
	return nil
}

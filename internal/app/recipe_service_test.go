package app_test

import (
	"context"
	"errors"
	"testing"

	"recipebox/internal/app"
	"recipebox/internal/domain"

	"github.com/google/uuid"
)

type mockRecipeRepo struct {
	createFn func(ctx context.Context, r *domain.Recipe) error
	listFn   func(ctx context.Context, ownerID uuid.UUID) ([]domain.Recipe, error)
	getFn    func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Recipe, error)
	updateFn func(ctx context.Context, r *domain.Recipe) (bool, error)
	deleteFn func(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

func (m *mockRecipeRepo) Create(ctx context.Context, r *domain.Recipe) error {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	return nil
}

func (m *mockRecipeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Recipe, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockRecipeRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Recipe, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ownerID, id)
	}
	return nil, nil
}

func (m *mockRecipeRepo) Update(ctx context.Context, r *domain.Recipe) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, r)
	}
	return true, nil
}

func (m *mockRecipeRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, id)
	}
	return true, nil
}

func validDraft() app.RecipeDraft {
	return app.RecipeDraft{
		Name:         "Soup",
		Cuisine:      "Fr",
		Ingredients:  []string{"salt", "water"},
		Instructions: "boil",
		CookingTime:  "10",
	}
}

func TestCreateRecipe_Validation(t *testing.T) {
	svc := app.NewRecipeService(&mockRecipeRepo{})

	tests := []struct {
		name   string
		mutate func(*app.RecipeDraft)
	}{
		{"missing name", func(d *app.RecipeDraft) { d.Name = "" }},
		{"missing cuisine", func(d *app.RecipeDraft) { d.Cuisine = "" }},
		{"missing ingredients", func(d *app.RecipeDraft) { d.Ingredients = nil }},
		{"missing instructions", func(d *app.RecipeDraft) { d.Instructions = "" }},
		{"missing cooking time", func(d *app.RecipeDraft) { d.CookingTime = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(&draft)
			_, err := svc.Create(context.Background(), uuid.New(), draft)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateRecipe_SetsOwnerFromCaller(t *testing.T) {
	owner := uuid.New()
	var persisted *domain.Recipe
	repo := &mockRecipeRepo{
		createFn: func(_ context.Context, r *domain.Recipe) error {
			persisted = r
			return nil
		},
	}
	svc := app.NewRecipeService(repo)

	created, err := svc.Create(context.Background(), owner, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted.OwnerID != owner {
		t.Fatalf("owner %v, want %v", persisted.OwnerID, owner)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
}

func TestGetRecipe_NotOwned(t *testing.T) {
	// The repository filters by (id, owner), so a foreign recipe surfaces
	// as nil and must report not-found, never existence.
	svc := app.NewRecipeService(&mockRecipeRepo{})

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestUpdateRecipe_MergesPatch(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()
	existing := domain.Recipe{
		ID: id, OwnerID: owner,
		Name: "Soup", Cuisine: "Fr",
		Ingredients:  []string{"salt", "water"},
		Instructions: "boil", CookingTime: "10",
	}

	var written *domain.Recipe
	repo := &mockRecipeRepo{
		getFn: func(_ context.Context, _, _ uuid.UUID) (*domain.Recipe, error) {
			cp := existing
			return &cp, nil
		},
		updateFn: func(_ context.Context, r *domain.Recipe) (bool, error) {
			written = r
			return true, nil
		},
	}
	svc := app.NewRecipeService(repo)

	newName := "Onion Soup"
	updated, err := svc.Update(context.Background(), owner, id, domain.RecipePatch{Name: &newName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Onion Soup" {
		t.Fatalf("name not replaced: %q", updated.Name)
	}
	if updated.Cuisine != "Fr" || updated.Instructions != "boil" || updated.CookingTime != "10" {
		t.Fatal("omitted fields must keep their stored values")
	}
	if written == nil || written.ID != id || written.OwnerID != owner {
		t.Fatal("update must be scoped to (id, owner)")
	}
}

func TestUpdateRecipe_NotFound(t *testing.T) {
	svc := app.NewRecipeService(&mockRecipeRepo{})

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), domain.RecipePatch{})
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestUpdateRecipe_EmptyFieldRejected(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()
	repo := &mockRecipeRepo{
		getFn: func(_ context.Context, _, _ uuid.UUID) (*domain.Recipe, error) {
			return &domain.Recipe{
				ID: id, OwnerID: owner, Name: "Soup", Cuisine: "Fr",
				Ingredients: []string{"salt"}, Instructions: "boil", CookingTime: "10",
			}, nil
		},
	}
	svc := app.NewRecipeService(repo)

	empty := ""
	_, err := svc.Update(context.Background(), owner, id, domain.RecipePatch{Name: &empty})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateRecipe_RaceWithDelete(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()
	repo := &mockRecipeRepo{
		getFn: func(_ context.Context, _, _ uuid.UUID) (*domain.Recipe, error) {
			return &domain.Recipe{
				ID: id, OwnerID: owner, Name: "Soup", Cuisine: "Fr",
				Ingredients: []string{"salt"}, Instructions: "boil", CookingTime: "10",
			}, nil
		},
		updateFn: func(_ context.Context, _ *domain.Recipe) (bool, error) {
			return false, nil
		},
	}
	svc := app.NewRecipeService(repo)

	_, err := svc.Update(context.Background(), owner, id, domain.RecipePatch{})
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestDeleteRecipe_NotFound(t *testing.T) {
	repo := &mockRecipeRepo{
		deleteFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := app.NewRecipeService(repo)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

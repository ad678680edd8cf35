package adapthttp

import (
	"net/http"

	"recipebox/internal/app"
	"recipebox/internal/domain"

	"github.com/google/uuid"
)

func (s *Server) handleRecipeCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string   `json:"name"`
		Cuisine      string   `json:"cuisine"`
		Ingredients  []string `json:"ingredients"`
		Instructions string   `json:"instructions"`
		CookingTime  string   `json:"cookingTime"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipe, err := s.recipes.Create(r.Context(), userFrom(r).ID, app.RecipeDraft{
		Name:         req.Name,
		Cuisine:      req.Cuisine,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CookingTime:  req.CookingTime,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Success: true, Message: "recipe created successfully", Recipe: recipe})
}

func (s *Server) handleRecipeList(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.recipes.List(r.Context(), userFrom(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Recipes: recipes})
}

func (s *Server) handleRecipeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	recipe, err := s.recipes.Get(r.Context(), userFrom(r).ID, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Recipe: recipe})
}

func (s *Server) handleRecipeUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	var patch domain.RecipePatch
	if err := parseJSON(r, &patch); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipe, err := s.recipes.Update(r.Context(), userFrom(r).ID, id, patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: "recipe updated successfully", Recipe: recipe})
}

func (s *Server) handleRecipeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := s.recipes.Delete(r.Context(), userFrom(r).ID, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: "recipe deleted successfully"})
}

// recipeID parses the {id} path segment. A malformed id can never match a
// stored recipe, so it reports the same not-found as a missing one.
func recipeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, domain.ErrRecipeNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

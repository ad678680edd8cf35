// Package client is the API client for the recipebox server. It plays the
// role of the web UI's state store: it issues the HTTP calls and reflects
// their results into observable state (the signed-in user, the recipe list,
// and per-action busy flags).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"

	"recipebox/internal/domain"

	"github.com/google/uuid"
)

const apiPrefix = "/api/v1/auth"

// APIError is a failure response reported by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// State is a snapshot of the client's observable state.
type State struct {
	User    *domain.User
	Recipes []domain.Recipe

	SigningUp       bool
	LoggingIn       bool
	LoggingOut      bool
	CheckingAuth    bool
	FetchingRecipes bool
	CreatingRecipe  bool
	EditingRecipe   bool
	DeletingRecipe  bool

	// LastError holds the most recent failed action's error, cleared by the
	// next successful action.
	LastError error
}

// Client issues API calls and holds the resulting state. The session cookie
// set by signup/login travels in the underlying cookie jar. Safe for
// concurrent use.
type Client struct {
	base string
	http *http.Client

	mu    sync.Mutex
	state State
}

// New creates a Client for the server at baseURL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: baseURL,
		http: &http.Client{Jar: jar},
	}, nil
}

// State returns a snapshot of the current state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state
	snap.Recipes = append([]domain.Recipe(nil), c.state.Recipes...)
	if c.state.User != nil {
		u := *c.state.User
		snap.User = &u
	}
	return snap
}

// User returns the signed-in user, or nil.
func (c *Client) User() *domain.User {
	return c.State().User
}

// Recipes returns the fetched recipe list.
func (c *Client) Recipes() []domain.Recipe {
	return c.State().Recipes
}

// Credentials are the signup/login fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// RecipeInput carries the recipe fields for create and edit calls.
type RecipeInput struct {
	Name         string   `json:"name"`
	Cuisine      string   `json:"cuisine"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	CookingTime  string   `json:"cookingTime"`
}

// Signup registers a new account and signs it in.
func (c *Client) Signup(ctx context.Context, creds Credentials) error {
	c.setFlag(func(s *State) { s.SigningUp = true })
	resp, err := c.do(ctx, http.MethodPost, "/signup", creds)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SigningUp = false
	if err != nil {
		c.state.User = nil
		c.state.LastError = err
		return err
	}
	c.state.User = resp.User
	c.state.LastError = nil
	return nil
}

// Login signs in with existing credentials.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	c.setFlag(func(s *State) { s.LoggingIn = true })
	resp, err := c.do(ctx, http.MethodPost, "/login", creds)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.LoggingIn = false
	if err != nil {
		c.state.User = nil
		c.state.LastError = err
		return err
	}
	c.state.User = resp.User
	c.state.LastError = nil
	return nil
}

// Logout clears the session. Safe to call repeatedly.
func (c *Client) Logout(ctx context.Context) error {
	c.setFlag(func(s *State) { s.LoggingOut = true })
	_, err := c.do(ctx, http.MethodPost, "/logout", nil)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.LoggingOut = false
	if err != nil {
		c.state.LastError = err
		return err
	}
	c.state.User = nil
	c.state.Recipes = nil
	c.state.LastError = nil
	return nil
}

// AuthCheck restores the session user after a restart. An unauthenticated
// response is not an error; it just leaves the user unset.
func (c *Client) AuthCheck(ctx context.Context) error {
	c.setFlag(func(s *State) { s.CheckingAuth = true })
	resp, err := c.do(ctx, http.MethodGet, "/authCheck", nil)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CheckingAuth = false
	if err != nil {
		c.state.User = nil
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil
		}
		c.state.LastError = err
		return err
	}
	c.state.User = resp.User
	c.state.LastError = nil
	return nil
}

// FetchRecipes loads the signed-in user's recipes.
func (c *Client) FetchRecipes(ctx context.Context) error {
	c.setFlag(func(s *State) { s.FetchingRecipes = true })
	resp, err := c.do(ctx, http.MethodGet, "/recipe", nil)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.FetchingRecipes = false
	if err != nil {
		c.state.LastError = err
		return err
	}
	c.state.Recipes = resp.Recipes
	c.state.LastError = nil
	return nil
}

// CreateRecipe creates a recipe and appends it to the local list.
func (c *Client) CreateRecipe(ctx context.Context, in RecipeInput) (*domain.Recipe, error) {
	c.setFlag(func(s *State) { s.CreatingRecipe = true })
	resp, err := c.do(ctx, http.MethodPost, "/recipe", in)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CreatingRecipe = false
	if err != nil {
		c.state.LastError = err
		return nil, err
	}
	c.state.Recipes = append(c.state.Recipes, *resp.Recipe)
	c.state.LastError = nil
	return resp.Recipe, nil
}

// GetRecipe fetches a single recipe by id.
func (c *Client) GetRecipe(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	resp, err := c.do(ctx, http.MethodGet, "/recipe/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	return resp.Recipe, nil
}

// EditRecipe updates a recipe and replaces it in the local list.
func (c *Client) EditRecipe(ctx context.Context, id uuid.UUID, patch domain.RecipePatch) (*domain.Recipe, error) {
	c.setFlag(func(s *State) { s.EditingRecipe = true })
	resp, err := c.do(ctx, http.MethodPut, "/recipe/"+id.String(), patch)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.EditingRecipe = false
	if err != nil {
		c.state.LastError = err
		return nil, err
	}
	for i := range c.state.Recipes {
		if c.state.Recipes[i].ID == id {
			c.state.Recipes[i] = *resp.Recipe
		}
	}
	c.state.LastError = nil
	return resp.Recipe, nil
}

// DeleteRecipe deletes a recipe and drops it from the local list.
func (c *Client) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	c.setFlag(func(s *State) { s.DeletingRecipe = true })
	_, err := c.do(ctx, http.MethodDelete, "/recipe/"+id.String(), nil)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DeletingRecipe = false
	if err != nil {
		c.state.LastError = err
		return err
	}
	kept := c.state.Recipes[:0]
	for _, r := range c.state.Recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	c.state.Recipes = kept
	c.state.LastError = nil
	return nil
}

func (c *Client) setFlag(set func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set(&c.state)
}

// apiResponse mirrors the server's shared response shape.
type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    *domain.User    `json:"user"`
	Recipe  *domain.Recipe  `json:"recipe"`
	Recipes []domain.Recipe `json:"recipes"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*apiResponse, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+apiPrefix+path, &buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close() //nolint:errcheck

	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		return nil, &APIError{Status: httpResp.StatusCode, Message: resp.Message}
	}
	return &resp, nil
}

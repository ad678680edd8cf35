package adapthttp

import (
	"net/http"

	"recipebox/internal/app"
	"recipebox/internal/token"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// OIDC bundles a configured SSO identity provider. A nil *OIDC disables the
// SSO routes.
type OIDC struct {
	Provider *oidc.Provider
	OAuth2   *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth        *app.AuthService
	recipes     *app.RecipeService
	tokens      *token.Codec
	log         *logrus.Logger
	webDir      string
	corsOrigins []string
	oidc        *OIDC
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, recipes *app.RecipeService, tokens *token.Codec, log *logrus.Logger, webDir string, corsOrigins []string, sso *OIDC) *Server {
	return &Server{
		auth:        auth,
		recipes:     recipes,
		tokens:      tokens,
		log:         log,
		webDir:      webDir,
		corsOrigins: corsOrigins,
		oidc:        sso,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /signup", s.handleSignup)
	api.HandleFunc("POST /login", s.handleLogin)
	api.HandleFunc("POST /logout", s.handleLogout)
	api.HandleFunc("GET /config", s.handleConfig)
	if s.oidc != nil {
		api.HandleFunc("GET /sso/login", s.handleSSOLogin)
		api.HandleFunc("GET /sso/callback", s.handleSSOCallback)
	}

	api.Handle("GET /authCheck", s.requireAuth(s.handleAuthCheck))
	api.Handle("POST /recipe", s.requireAuth(s.handleRecipeCreate))
	api.Handle("GET /recipe", s.requireAuth(s.handleRecipeList))
	api.Handle("GET /recipe/{id}", s.requireAuth(s.handleRecipeGet))
	api.Handle("PUT /recipe/{id}", s.requireAuth(s.handleRecipeUpdate))
	api.Handle("DELETE /recipe/{id}", s.requireAuth(s.handleRecipeDelete))

	root := http.NewServeMux()
	root.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	root.Handle("/api/v1/auth/", http.StripPrefix("/api/v1/auth", api))
	root.Handle("/", spaFromDisk(s.webDir))

	c := cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	return s.loggingMiddleware(withNoCache(c.Handler(root)))
}

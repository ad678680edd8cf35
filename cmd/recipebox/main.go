package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	adapthttp "recipebox/internal/adapter/http"
	"recipebox/internal/adapter/memory"
	"recipebox/internal/adapter/postgres"
	"recipebox/internal/app"
	"recipebox/internal/config"
	"recipebox/internal/domain"
	"recipebox/internal/token"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	var (
		users   domain.UserRepository
		recipes domain.RecipeRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()
		users = db
		recipes = postgres.NewRecipeRepo(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		mem := memory.New()
		users = mem
		recipes = mem.NewRecipeRepo()
	}

	tokens := token.New([]byte(cfg.JWTSecret), cfg.SessionTTL)
	authSvc := app.NewAuthService(users, tokens)
	recipeSvc := app.NewRecipeService(recipes)

	var sso *adapthttp.OIDC
	if cfg.OIDC.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		provider, err := oidc.NewProvider(ctx, cfg.OIDC.IssuerURL)
		cancel()
		if err != nil {
			logger.Fatalf("oidc provider: %v", err)
		}
		sso = &adapthttp.OIDC{
			Provider: provider,
			OAuth2: &oauth2.Config{
				ClientID:     cfg.OIDC.ClientID,
				ClientSecret: cfg.OIDC.ClientSecret,
				RedirectURL:  cfg.OIDC.RedirectURL,
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			},
		}
	}

	h := adapthttp.New(authSvc, recipeSvc, tokens, logger, cfg.WebDir, cfg.CORSOrigins, sso).Handler()

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("listening on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(err)
	}
}

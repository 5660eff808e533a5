package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"aegis/internal/audit"
	"aegis/internal/platform/config"
	"aegis/internal/platform/logger"
	"aegis/internal/platform/tracer"
	reputationMetrics "aegis/internal/reputation/metrics"
	reputationService "aegis/internal/reputation/service"
	"aegis/internal/reputation/store/attempts"
	"aegis/internal/reputation/store/ipblock"
	sessionMetrics "aegis/internal/session/metrics"
	sessionModels "aegis/internal/session/models"
	"aegis/internal/session/service"
	"aegis/internal/session/store/accesstoken"
	accountStore "aegis/internal/session/store/account"
	"aegis/internal/session/store/refreshtoken"
	"aegis/internal/session/store/securityversion"
	"aegis/internal/session/token"
	"aegis/internal/session/workers/cleanup"
	httptransport "aegis/internal/transport/http"
	id "aegis/pkg/domain"
	"aegis/pkg/secrets"
)

// main wires stores, services, the security pipeline, and the server
// lifecycle. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing aegis",
		"addr", cfg.Addr,
		"access_token_ttl", cfg.AccessTokenTTL.String(),
		"refresh_token_ttl", cfg.RefreshTokenTTL.String(),
		"admin_surface_enabled", cfg.AdminAPIKeyHash != "",
	)

	// Stores
	accessTokens := accesstoken.New()
	refreshTokens := refreshtoken.New()
	versions := securityversion.New()
	accounts := accountStore.New()
	blocks := ipblock.New()
	attemptLedger := attempts.New()

	auditPublisher := audit.NewPublisher(audit.NewInMemoryStore(), audit.WithPublisherLogger(log))
	defer auditPublisher.Close()

	jwtService := token.NewService(cfg.JWTSigningKey, cfg.Issuer, cfg.Audience, cfg.AccessTokenTTL)

	reputation, err := reputationService.New(blocks, attemptLedger, &reputationService.Config{
		Window:             cfg.Reputation.Window,
		WindowLimit:        cfg.Reputation.WindowLimit,
		TempBlockBase:      cfg.Reputation.TempBlockBase,
		PermanentThreshold: cfg.Reputation.PermanentThreshold,
	},
		reputationService.WithLogger(log),
		reputationService.WithAuditPublisher(auditPublisher),
		reputationService.WithMetrics(reputationMetrics.New()),
		reputationService.WithTracer(tracer.NewNoop()),
	)
	if err != nil {
		log.Error("failed to build reputation service", "error", err)
		os.Exit(1)
	}

	sessions, err := service.New(accessTokens, refreshTokens, versions, accounts, jwtService,
		&service.Config{
			RefreshTokenTTL: cfg.RefreshTokenTTL,
			StoreDeadline:   cfg.StoreDeadline,
		},
		service.WithLogger(log),
		service.WithAuditPublisher(auditPublisher),
		service.WithAttemptRecorder(reputation),
		service.WithMetrics(sessionMetrics.New()),
		service.WithTracer(tracer.NewNoop()),
	)
	if err != nil {
		log.Error("failed to build session service", "error", err)
		os.Exit(1)
	}

	if err := seedDemoAccounts(accounts, log); err != nil {
		log.Error("failed to seed demo accounts", "error", err)
		os.Exit(1)
	}

	cleaner, err := cleanup.New(accessTokens, refreshTokens, blocks, reputation.Counter(),
		cleanup.WithInterval(cfg.CleanupInterval),
		cleanup.WithLogger(log),
	)
	if err != nil {
		log.Error("failed to build cleanup worker", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:         httptransport.NewAuthHandler(sessions),
		Admin:        httptransport.NewAdminHandler(sessions, reputation, log),
		Validator:    sessions,
		Reputation:   reputation,
		AdminKeyHash: cfg.AdminAPIKeyHash,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := cleaner.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// seedDemoAccounts loads the in-memory directory with credentials for local
// development. Production deployments plug in a real directory instead.
func seedDemoAccounts(accounts *accountStore.InMemoryStore, log *slog.Logger) error {
	password := os.Getenv("DEMO_ACCOUNT_PASSWORD")
	if password == "" {
		password = "demo-password"
	}
	hash, err := secrets.Hash(password)
	if err != nil {
		return err
	}

	for _, email := range []string{"alice@example.com", "bob@example.com"} {
		accountID := id.NewAccountID()
		accounts.Seed(&sessionModels.Account{
			ID:           accountID,
			Email:        email,
			PasswordHash: hash,
			Active:       true,
		})
		log.Info("seeded demo account", "email", email, "account_id", accountID.String())
	}
	return nil
}

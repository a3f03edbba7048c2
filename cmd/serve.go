package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"home-budget/config"
	httpLayer "home-budget/http"
	"home-budget/repository"
	"home-budget/service"
)

var flagPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "HTTP port (env PORT)")
	rootCmd.AddCommand(serveCmd)
}

// stores bundles the backing stores chosen by config.
type stores struct {
	cache     repository.CacheRepository
	scenarios repository.ScenarioRepository
	close     func() error
}

func openStores(cfg *config.Config, log *zap.Logger) stores {
	if !cfg.UseRedis() {
		log.Info("using in-memory stores")
		return stores{
			cache:     repository.NewLRUCache(cfg.CacheSize, cfg.CacheTTL),
			scenarios: repository.NewScenarioRepositoryMemory(cfg.MaxSessions, cfg.SessionTTL),
			close:     func() error { return nil },
		}
	}

	log.Info("using redis stores", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	client := repository.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	return stores{
		cache:     repository.NewRedisCache(client, cfg.CacheTTL),
		scenarios: repository.NewRedisScenarioRepository(client, cfg.SessionTTL),
		close:     client.Close,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	st := openStores(cfg, log)
	defer func() {
		if err := st.close(); err != nil {
			log.Warn("error closing stores", zap.Error(err))
		}
	}()

	budgetService := service.NewBudgetService(cat.Cities, cat.Policies, st.cache, log)
	scenarioService := service.NewScenarioService(st.scenarios, log)
	sensitivityService := service.NewRateSensitivityService(budgetService, log)
	explanationService := service.NewExplanationService(cfg.OpenAIAPIKey, cfg.OpenAIURL, cfg.OpenAIModel, log)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterDeps{
		Budget:       budgetService,
		Sensitivity:  sensitivityService,
		Scenarios:    scenarioService,
		Explanations: explanationService,
		RateLimiter:  rateLimiter,
		SessionTTL:   cfg.SessionTTL,
		Logger:       log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.Int("port", cfg.Port),
			zap.String("policy", cat.Policies.Default().Name),
			zap.Int("cities", cat.Cities.Len()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
		log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("error during server shutdown", zap.Error(err))
	}

	log.Info("server exited")
	return nil
}

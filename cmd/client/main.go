package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/savichev/memodeck/internal/adapter"
	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/service"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// credential flags are parsed together with the config flags inside
	// config.GetClientConfig
	login := flag.String("login", os.Getenv("MEMODECK_LOGIN"), "Account login")
	password := flag.String("password", os.Getenv("MEMODECK_PASSWORD"), "Account password")
	register := flag.Bool("register", false, "Create the account before syncing")

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("memodeck-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("memodeck-client", cfg.Adapter.LogPath)
	log.Debug().Any("config", cfg).Msg("received configs")

	transport := adapter.NewHTTPSyncTransport(adapter.HTTPClientConfig{
		BaseURL:    cfg.Adapter.BaseURL,
		Timeout:    cfg.Adapter.RequestTimeout,
		MaxRetries: cfg.Sync.MaxRetries,
	})

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	connectivity := adapter.NewPingMonitor(transport, 0, cfg.Sync.Network, log)
	services := service.NewClientServices(localStorage, transport, connectivity, cfg.Sync, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	connectivity.Start(ctx)
	defer connectivity.Stop()

	user := models.User{Login: *login, Password: *password}
	userID, err := authenticate(ctx, services.AuthService, user, *register)
	if err != nil {
		log.Fatal().Err(err).Msg("authentication failed")
	}
	log.Info().Int64("user_id", userID).Msg("authenticated")

	if report, err := services.Orchestrator.SyncNow(ctx, userID); err != nil {
		log.Error().Err(err).Msg("initial sync failed")
	} else {
		log.Info().Bool("success", report.Success).Int("items_synced", report.ItemsSynced).
			Int("items_failed", report.ItemsFailed).Int("conflicts", len(report.Conflicts)).Msg("initial sync finished")
	}

	if cfg.Sync.AutoSync {
		services.SyncJob.Start(ctx, userID, cfg.Sync.Interval)
	}

	<-ctx.Done()

	services.SyncJob.Stop()
	services.SyncJob.Flush(context.Background(), userID, cfg.Sync.FlushTimeout)
	log.Info().Msg("client shutdown gracefully")
}

func authenticate(ctx context.Context, auth service.ClientAuthService, user models.User, register bool) (int64, error) {
	if register {
		return auth.Register(ctx, user)
	}

	return auth.Login(ctx, user)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

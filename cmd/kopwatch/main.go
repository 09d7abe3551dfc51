package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/common"
	"github.com/anfieldrd/kopwatch/internal/config"
	"github.com/anfieldrd/kopwatch/internal/datastore"
	"github.com/anfieldrd/kopwatch/internal/differ"
	"github.com/anfieldrd/kopwatch/internal/discovery"
	"github.com/anfieldrd/kopwatch/internal/httpclient"
	"github.com/anfieldrd/kopwatch/internal/logger"
	"github.com/anfieldrd/kopwatch/internal/monitor"
	"github.com/anfieldrd/kopwatch/internal/normalizer"
	"github.com/anfieldrd/kopwatch/internal/notifier"
)

func main() {
	fmt.Println("kopwatch starting...")

	configFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")
	flag.Parse()

	if *configFile == "" && *configFileAlias != "" {
		*configFile = *configFileAlias
	}

	// .env is optional; environment overrides are applied during config load.
	_ = godotenv.Load()

	gCfg, err := config.LoadGlobalConfig(*configFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", *configFile, err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().Msg("Logger initialized successfully.")

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	zLogger.Info().Int("sites", len(gCfg.Sites)).Msg("Configuration validated successfully.")

	service, runLog, err := buildService(zLogger, gCfg)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize monitoring service")
	}
	if runLog != nil {
		defer runLog.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, cancelling run...")
		cancel()
	}()

	summary, err := service.RunOnce(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			zLogger.Warn().Msg("Monitoring run interrupted before completion.")
		} else {
			zLogger.Error().Err(err).Msg("Monitoring run failed.")
		}
		os.Exit(1)
	}

	zLogger.Info().
		Int("checked", summary.Checked).
		Int("changes", summary.Changes).
		Bool("notified", summary.Notified).
		Msg("kopwatch finished.")
}

// buildService wires the monitoring service from the validated configuration.
// The returned RunLog is nil when the run ledger is disabled or unavailable.
func buildService(zLogger zerolog.Logger, gCfg *config.GlobalConfig) (*monitor.Service, *datastore.RunLog, error) {
	fetcher, err := httpclient.NewPageFetcher(zLogger, gCfg.MonitorConfig)
	if err != nil {
		return nil, nil, err
	}

	webhookTimeout := time.Duration(gCfg.NotificationConfig.WebhookTimeoutSeconds) * time.Second
	webhookClient, err := common.NewHTTPClientFactory(zLogger).CreateWebhookClient(webhookTimeout)
	if err != nil {
		return nil, nil, err
	}

	var historyStore *datastore.HistoryStore
	if gCfg.StorageConfig.HistoryEnabled {
		historyStore = datastore.NewHistoryStore(zLogger, gCfg.StorageConfig)
		zLogger.Info().Str("directory", gCfg.StorageConfig.HistoryDir).Msg("Check history recording enabled.")
	}

	var runLog *datastore.RunLog
	if gCfg.StorageConfig.RunLogEnabled {
		runLog, err = datastore.NewRunLog(zLogger, gCfg.StorageConfig)
		if err != nil {
			// The ledger is best effort; the monitoring pass proceeds without it.
			zLogger.Error().Err(err).Msg("Failed to open run ledger, continuing without it.")
			runLog = nil
		}
	}

	discordNotifier := notifier.NewDiscordNotifier(zLogger, webhookClient)
	service := monitor.NewService(zLogger, gCfg, monitor.ServiceDeps{
		TargetManager: monitor.NewTargetManager(zLogger, discovery.NewLinkDiscoverer(zLogger, gCfg.MonitorConfig)),
		Fetcher:       fetcher,
		Normalizer:    normalizer.NewTextNormalizer(zLogger),
		Processor:     monitor.NewContentProcessor(zLogger, gCfg.MonitorConfig),
		Differ:        differ.NewContentDiffer(zLogger, gCfg.DiffConfig),
		StateStore:    datastore.NewStateStore(zLogger, gCfg.StorageConfig),
		HistoryStore:  historyStore,
		RunLog:        runLog,
		Notifier:      notifier.NewNotificationHelper(zLogger, gCfg.NotificationConfig, discordNotifier),
	})
	return service, runLog, nil
}

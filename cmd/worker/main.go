package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appconfig "github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/config"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/infra/notifier"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/infra/scraper"
	workerPkg "github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/infra/worker"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/observability/logging"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/pkg/config"
	fetchUC "github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/usecase/fetch"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/usecase/notify"
)

func main() {
	// A missing .env file is fine; environment variables win either way.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerConfig := workerPkg.LoadConfigFromEnv(logger)
	logger.Info("worker configuration loaded",
		slog.Duration("update_interval", workerConfig.UpdateInterval),
		slog.Duration("cycle_timeout", workerConfig.CycleTimeout),
		slog.Duration("message_spacing", workerConfig.MessageSpacing),
		slog.Int("status_port", workerConfig.StatusPort))

	feedsFile := config.LoadEnvString("FEEDS_FILE", appconfig.DefaultFeedsFile)
	feeds, err := appconfig.LoadFeeds(feedsFile)
	if err != nil {
		logger.Error("failed to load feeds", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("feeds loaded", slog.String("file", feedsFile), slog.Int("count", len(feeds)))

	channels := buildChannels(logger)
	if len(channels) == 0 {
		logger.Warn("no delivery channel enabled, items will be fetched and dropped")
	}

	feedFetcher := scraper.NewRSSFetcher(createHTTPClient())
	service := fetchUC.NewService(feeds, feedFetcher, channels, workerConfig.MessageSpacing)

	descriptor := workerPkg.NewDescriptor(workerConfig, feeds,
		os.Getenv("WEBHOOK_URL"),
		config.LoadEnvString("BASE_URL", "https://example.com/webhook-rss-integration"))
	statusServer := workerPkg.NewStatusServer(workerConfig.StatusPort, service, descriptor, logger)
	go func() {
		if err := statusServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("status server failed", slog.Any("error", err))
		}
	}()

	scheduler := workerPkg.NewScheduler(service, workerConfig.UpdateInterval, workerConfig.CycleTimeout, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	statusServer.SetReady(true)
	logger.Info("worker started")

	<-ctx.Done()
	logger.Info("shutdown signal received")
	scheduler.Stop()
	logger.Info("worker stopped")
}

// buildChannels constructs the enabled delivery channels from environment
// configuration.
func buildChannels(logger *slog.Logger) []notify.Channel {
	var channels []notify.Channel

	telexConfig := loadTelexConfig(logger)
	if telexConfig.Enabled {
		channels = append(channels, notify.NewTelexChannel(telexConfig))
		logger.Info("telex channel initialized", slog.String("channel_id", telexConfig.ChannelID))
	} else {
		logger.Info("telex channel disabled")
	}

	webhookConfig := loadWebhookConfig(logger)
	if webhookConfig.Enabled {
		channels = append(channels, notify.NewWebhookChannel(webhookConfig))
		logger.Info("webhook channel initialized")
	} else {
		logger.Info("webhook channel disabled")
	}

	return channels
}

// loadTelexConfig loads Telex channel configuration from environment
// variables. The channel is enabled only when both TELEX_CHANNEL_ID and
// TELEX_TOKEN are present.
func loadTelexConfig(logger *slog.Logger) notifier.TelexConfig {
	channelID := os.Getenv("TELEX_CHANNEL_ID")
	token := os.Getenv("TELEX_TOKEN")
	apiBase := config.LoadEnvString("TELEX_API_BASE", "https://api.telex.im/api/v1/channels")

	if channelID == "" || token == "" {
		return notifier.TelexConfig{Enabled: false}
	}

	if _, err := url.ParseRequestURI(apiBase); err != nil {
		logger.Warn("invalid TELEX_API_BASE, disabling telex channel", slog.Any("error", err))
		return notifier.TelexConfig{Enabled: false}
	}

	return notifier.TelexConfig{
		Enabled:   true,
		APIBase:   apiBase,
		ChannelID: channelID,
		Token:     token,
		Timeout:   30 * time.Second,
	}
}

// loadWebhookConfig loads webhook delivery configuration from environment
// variables. The channel is enabled only when WEBHOOK_URL is a valid HTTPS
// URL.
func loadWebhookConfig(logger *slog.Logger) notifier.WebhookConfig {
	webhookURL := os.Getenv("WEBHOOK_URL")
	if webhookURL == "" {
		return notifier.WebhookConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		logger.Warn("WEBHOOK_URL must be a valid https URL, disabling webhook channel",
			slog.String("url", webhookURL))
		return notifier.WebhookConfig{Enabled: false}
	}

	return notifier.WebhookConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		EventName:  os.Getenv("WEBHOOK_EVENT_NAME"),
		Status:     os.Getenv("WEBHOOK_STATUS"),
		Username:   os.Getenv("WEBHOOK_USERNAME"),
		Timeout:    30 * time.Second,
	}
}

// createHTTPClient creates the feed-fetching HTTP client with timeouts and
// connection pooling. TLS 1.2+ is enforced.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

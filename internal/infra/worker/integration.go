package worker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/domain/entity"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/infra/notifier"
)

// Descriptor is the platform-facing integration manifest served at
// /integration.json. Hosting platforms read it to discover the schedule,
// the configurable settings, and the tick endpoint.
type Descriptor struct {
	Data descriptorData `json:"data"`
}

type descriptorData struct {
	Date                descriptorDate  `json:"date"`
	Descriptions        appDescriptions `json:"descriptions"`
	IntegrationCategory string          `json:"integration_category"`
	IntegrationType     string          `json:"integration_type"`
	IsActive            bool            `json:"is_active"`
	KeyFeatures         []string        `json:"key_features"`
	Settings            []settingField  `json:"settings"`
	TickURL             string          `json:"tick_url"`
	TargetURL           string          `json:"target_url"`
}

type descriptorDate struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type appDescriptions struct {
	AppName         string `json:"app_name"`
	AppDescription  string `json:"app_description"`
	AppURL          string `json:"app_url"`
	AppLogo         string `json:"app_logo"`
	BackgroundColor string `json:"background_color"`
}

type settingField struct {
	Label       string `json:"label"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

// NewDescriptor builds the manifest from the effective configuration so the
// advertised defaults match what the worker actually runs with.
func NewDescriptor(cfg Config, feeds []entity.Feed, webhookURL, baseURL string) Descriptor {
	feedsJSON, _ := json.Marshal(feeds)

	return Descriptor{Data: descriptorData{
		Date: descriptorDate{
			CreatedAt: "2025-02-18",
			UpdatedAt: "2025-02-18",
		},
		Descriptions: appDescriptions{
			AppName:         "Webhook RSS Feed Integration",
			AppDescription:  "Interval integration that fetches RSS feeds, deduplicates new entries, and posts formatted updates to a Telex channel.",
			AppURL:          baseURL,
			AppLogo:         baseURL + "/logo.png",
			BackgroundColor: "#123456",
		},
		IntegrationCategory: "Monitoring & Logging",
		IntegrationType:     "interval",
		IsActive:            false,
		KeyFeatures: []string{
			"Fetches and parses RSS feeds from multiple sources.",
			"Posts formatted updates to a Telex channel via webhook.",
			"Executes on a fixed interval using crontab syntax.",
			"Provides monitoring and logging capabilities.",
		},
		Settings: []settingField{
			{
				Label:       "interval",
				Type:        "text",
				Required:    true,
				Default:     intervalExpression(cfg.UpdateInterval),
				Description: "Cron expression defining how often the integration runs.",
			},
			{
				Label:       "Webhook URL",
				Type:        "text",
				Required:    true,
				Default:     webhookURL,
				Description: "URL to which webhook payloads are sent.",
			},
			{
				Label:       "Feeds",
				Type:        "text",
				Required:    true,
				Default:     string(feedsJSON),
				Description: "JSON string of feed objects with their URLs and categories.",
			},
			{
				Label:       "Event Name",
				Type:        "text",
				Required:    true,
				Default:     notifier.DefaultEventName,
				Description: "Event name to be sent in the webhook payload.",
			},
			{
				Label:       "Status",
				Type:        "text",
				Required:    true,
				Default:     notifier.DefaultStatus,
				Description: "Status indicator sent in the webhook payload.",
			},
			{
				Label:       "Username",
				Type:        "text",
				Required:    true,
				Default:     notifier.DefaultUsername,
				Description: "Username to be included in the webhook payload.",
			},
		},
		TickURL:   baseURL + "/tick",
		TargetURL: "",
	}}
}

// intervalExpression renders the update interval as a crontab expression.
// Intervals that do not divide an hour evenly fall back to the 30-minute
// expression, which is what the descriptor format can express.
func intervalExpression(interval time.Duration) string {
	minutes := int(interval.Minutes())
	if minutes >= 1 && minutes < 60 && interval%time.Minute == 0 {
		return fmt.Sprintf("*/%d * * * *", minutes)
	}
	if interval%time.Hour == 0 && interval < 24*time.Hour {
		return fmt.Sprintf("0 */%d * * *", int(interval.Hours()))
	}
	return "*/30 * * * *"
}

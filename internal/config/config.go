// Package config loads the service configuration from MAKEAREADME_*
// environment variables. Every value has a default, and the defaults
// reproduce the page as published on www.makeareadme.com.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every environment variable name.
const Prefix = "MAKEAREADME_"

var (
	// ErrInvalidLogFormat is returned when LOG_FORMAT is neither text nor
	// json.
	ErrInvalidLogFormat = errors.New("log format must be text or json")

	// ErrInvalidLogLevel is returned when LOG_LEVEL isn't a slog level.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config is the configuration of the serve and export commands.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:"localhost:8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// StaticDir is served under /images/ and /lava-cake/ when set.
	StaticDir string `env:"STATIC_DIR"`

	// TemplateDir replaces the embedded templates with the ones on disk
	// when set.
	TemplateDir string `env:"TEMPLATE_DIR"`

	ExportDir string `env:"EXPORT_DIR" envDefault:"public"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// OTelEndpoint is the OTLP/HTTP endpoint traces are exported to.
	// Tracing is off when it's empty.
	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	Site Site
}

// Site is what the page shows: metadata, branding, the ad slot and the
// third-party scripts.
type Site struct {
	Title          string `env:"TITLE" envDefault:"Make a README"`
	Description    string `env:"DESCRIPTION" envDefault:"Learn how to make a great README for your programming project, and use the editable template to get started."`
	URL            string `env:"URL" envDefault:"https://www.makeareadme.com"`
	SiteName       string `env:"SITE_NAME" envDefault:"Make a README"`
	ContentType    string `env:"CONTENT_TYPE" envDefault:"website"`
	ImageURL       string `env:"IMAGE_URL" envDefault:"https://www.makeareadme.com/images/open-graph-logo.png?v=20181203"`
	ImageType      string `env:"IMAGE_TYPE" envDefault:"image/png"`
	ImageWidth     int    `env:"IMAGE_WIDTH" envDefault:"1200"`
	ImageHeight    int    `env:"IMAGE_HEIGHT" envDefault:"630"`
	TwitterCard    string `env:"TWITTER_CARD" envDefault:"summary"`
	TwitterCreator string `env:"TWITTER_CREATOR" envDefault:"@dannyguo"`
	Favicon        string `env:"FAVICON" envDefault:"images/favicon.ico"`

	// AssetBaseURL is prepended to asset paths like the favicon.
	AssetBaseURL string `env:"ASSET_BASE_URL"`
	Stylesheet   string `env:"STYLESHEET"`

	RepositoryURL string `env:"REPOSITORY_URL" envDefault:"https://github.com/dguo/make-a-readme"`
	BannerColor   string `env:"BANNER_COLOR" envDefault:"#fff"`
	OctoColor     string `env:"OCTO_COLOR" envDefault:"#404040"`

	AdElementID string `env:"AD_ELEMENT_ID" envDefault:"ethicalads-section"`
	AdPublisher string `env:"AD_PUBLISHER" envDefault:"makeareadmecom"`
	AdType      string `env:"AD_TYPE" envDefault:"image"`
	AdClientURL string `env:"AD_CLIENT_URL" envDefault:"https://media.ethicalads.io/media/client/ethicalads.min.js"`

	AnchorJSURL     string `env:"ANCHOR_JS_URL" envDefault:"https://cdnjs.cloudflare.com/ajax/libs/anchor-js/4.1.1/anchor.min.js"`
	AnchorPlacement string `env:"ANCHOR_PLACEMENT" envDefault:"left"`
	AnchorTruncate  int    `env:"ANCHOR_TRUNCATE" envDefault:"50"`

	GoogleTagID   string `env:"GOOGLE_TAG_ID" envDefault:"G-2BK72SW7BH"`
	TagManagerURL string `env:"TAG_MANAGER_URL" envDefault:"https://www.googletagmanager.com/gtag/js"`

	TrackingScriptURL string `env:"TRACKING_SCRIPT_URL" envDefault:"/lava-cake/js/script.js"`
	TrackingAPI       string `env:"TRACKING_API" envDefault:"/lava-cake/api/event"`
	TrackingDomain    string `env:"TRACKING_DOMAIN" envDefault:"makeareadme.com"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromEnvironment(env.ToMap(os.Environ()))
}

// FromEnvironment reads the configuration from environ, a map of variable
// names to values. A nil map means no variables are set.
func FromEnvironment(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	var cfg Config
	err := env.ParseWithOptions(&cfg, env.Options{
		Environment: environ,
		Prefix:      Prefix,
	})
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports values that parsed but can't be used.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns LogLevel as a slog.Level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return level, nil
}

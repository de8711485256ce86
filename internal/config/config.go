// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() for defaults and Load(ctx) for layered loading.
// - External errors must be wrapped via this package's sentinel kinds.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// UpstreamBaseURL is the CRM API root.
	UpstreamBaseURL string `koanf:"upstream_base_url"`

	// UpstreamAPIKey is attached to every upstream request ("chave" header).
	// When empty the gateway runs in synthetic mode.
	UpstreamAPIKey string `koanf:"upstream_api_key"`

	// UpstreamUser and UpstreamPassword unlock the optional app-level
	// endpoints. Absence simply leaves those endpoints unused.
	UpstreamUser     string `koanf:"upstream_user"`
	UpstreamPassword string `koanf:"upstream_password"`

	// UseSynthetic forces the synthetic data source even when an API key
	// is configured.
	UseSynthetic bool `koanf:"use_synthetic"`

	// PageSize is the upstream listing page size (limit imposed by the API).
	PageSize int `koanf:"page_size"`

	// MaxPages caps pagination against a misbehaving upstream.
	MaxPages int `koanf:"max_pages"`

	// PollIntervalSeconds is the refresh cadence for broker and sale polls.
	PollIntervalSeconds int `koanf:"poll_interval_seconds"`

	// DefaultPeriod selects the initial ranking window.
	DefaultPeriod string `koanf:"default_period"`

	// DefaultPhotoURL is the placeholder applied to brokers without photos.
	DefaultPhotoURL string `koanf:"default_photo_url"`

	// Teams maps a team key to the exact display names of its members.
	Teams map[string][]string `koanf:"teams"`

	// Photos maps normalized broker names to photo paths.
	Photos map[string]string `koanf:"photos"`

	// WebhookURL, when set, receives new-sale notifications.
	WebhookURL string `koanf:"webhook_url"`
}

// PollInterval returns the poll cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// New creates a Config with defaults. The default roster mirrors the
// brokerage's current team sheet; deployments override it via file or env.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		UpstreamBaseURL:     "https://api.imoview.com.br/",
		PageSize:            20,
		MaxPages:            500,
		PollIntervalSeconds: 60,
		DefaultPeriod:       "this-month",
		DefaultPhotoURL:     "/avatar-placeholder.png",
		Teams: map[string][]string{
			"alto-padrao": {
				"Alcino da Silva",
				"Jaqueline Rodrigues Vasconcelos",
				"Lauanda Azara",
				"Lilian Bruna Alves Lemes",
				"Lorena Fernandes",
				"Marcio Adriano",
				"Rafael Melo Pereira",
			},
			"economico": {
				"Cinara de Freitas",
				"Hugo Said Tocantins",
				"Leticia Aparecida Valu Cardoso",
				"Morena Rojas",
				"Nayara Santiago",
				"Paula Ressurreição da Rosa",
				"Pedro Tito Prata",
				"Ricardo Augusto de Souza",
				"Rubismar Almeida Costa",
				"Vanessa Freitas",
				"Wellington Antonio dos Reis",
			},
			"mcmv": {
				"Carla Cardinale",
				"Gabrielle Cristina dos Santos",
				"Giovanna Ferreira Miranda",
				"Jefferson Silva de Sousa",
				"João Pablo Telles Ribeiro",
				"Levi José Ávila da Silva",
				"Mariane Soares Rodrigues",
				"Matheus Santiago Marques De Almeida",
				"Tainara Cristina Portela",
				"Victor Hugo Rocha Menezes Rodrigues",
				"Willen Marcus Marins Santiago",
			},
		},
		Photos: map[string]string{},
	}
}

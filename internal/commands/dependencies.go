package commands

import (
	"github.com/diogo/malcolmweb/internal/api"
	"github.com/diogo/malcolmweb/internal/config"
	"github.com/diogo/malcolmweb/internal/device"
	"github.com/diogo/malcolmweb/internal/logging"
)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the Malcolm API client.
	Client api.MalcolmClientInterface

	// Collector gathers the device profile for optimize requests.
	Collector device.Collector
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		Collector: device.DefaultCollector(),
	}
}

// loadConfig loads the user configuration and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
		// A flag override invalidates a derived socket URL too.
		cfg.SocketURL = ""
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	return cfg, nil
}

// setup loads configuration, initializes logging, and ensures deps carry a
// live client. Commands call it once at the top of their RunE.
func setup(deps *Dependencies) (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, err
	}
	if err := logging.Init(cfg); err != nil {
		logging.Warn("log setup failed", "error", err)
	}

	if deps.Client == nil {
		client, err := api.NewClient(api.WithBaseURL(cfg.BaseURL))
		if err != nil {
			return cfg, err
		}
		deps.Client = client
	}
	return cfg, nil
}

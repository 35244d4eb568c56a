package cassdao

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"cassdao/internal/logging"
)

// --- Global Configuration ---

var (
	globalSession SessionSupplier
	globalOptions *Options
	isConfigured  bool
	configMutex   sync.RWMutex
)

// Config holds the package-level defaults used by Use.
type Config struct {
	Session SessionSupplier // Required; called once per load or Execute
	Options *Options        // Handed unread to every adapter created by Use
}

// Configure sets the package-level session supplier and default options.
// It must be called once during initialization before Use.
func Configure(cfg Config) error {
	if cfg.Session == nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrNilSupplier)
	}
	configMutex.Lock()
	defer configMutex.Unlock()

	globalSession = cfg.Session
	globalOptions = cfg.Options
	isConfigured = true
	logging.Logger().Debug().Msg("cassdao configured globally with a session supplier")
	return nil
}

// SetLogger replaces the logger used when a call's context carries none.
// By default warnings and errors go to stderr.
func SetLogger(l zerolog.Logger) {
	logging.Set(l)
}

// Use returns a new adapter for table bound to the global configuration.
func Use(table string) (*Adapter, error) {
	configMutex.RLock()
	defer configMutex.RUnlock()
	if !isConfigured {
		return nil, fmt.Errorf("%w: Configure must be called before Use", ErrConfiguration)
	}
	return New(table, globalSession, globalOptions), nil
}

// resetConfig clears the global configuration; used by tests.
func resetConfig() {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalSession = nil
	globalOptions = nil
	isConfigured = false
}

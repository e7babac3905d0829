package telemetry

import "sync"

// APIKey is the PostHog project key, injected at build time:
//
//	-ldflags "-X github.com/josephgoksu/codecrew/internal/telemetry.APIKey=phc_..."
var APIKey string

var (
	defaultClient   Client = NewNoopClient()
	defaultClientMu sync.RWMutex
)

// Init installs the global client. enabled is the telemetry.enabled setting;
// when nil the stored opt-in decides.
func Init(version string, enabled *bool) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	effective := *cfg
	if enabled != nil {
		effective.Enabled = *enabled
	}
	if effective.IsEnabled() {
		// Persist the anonymous ID only; the override is never stored.
		if err := cfg.Save(); err != nil {
			return err
		}
	}

	client, err := NewClient(ClientConfig{APIKey: APIKey, Version: version, Config: &effective})
	if err != nil {
		return err
	}
	SetClient(client)
	return nil
}

// SetClient replaces the global client.
func SetClient(c Client) {
	defaultClientMu.Lock()
	defer defaultClientMu.Unlock()
	defaultClient = c
}

// Track records an event on the global client.
func Track(event string, properties Properties) {
	defaultClientMu.RLock()
	defer defaultClientMu.RUnlock()
	defaultClient.Track(event, properties)
}

// Shutdown flushes and resets the global client.
func Shutdown() error {
	defaultClientMu.Lock()
	defer defaultClientMu.Unlock()
	err := defaultClient.Close()
	defaultClient = NewNoopClient()
	return err
}

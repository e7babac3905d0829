package telemetry

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEnqueuer captures events for testing.
type mockEnqueuer struct {
	mu     sync.Mutex
	events []posthog.Capture
	closed bool
}

func (m *mockEnqueuer) Enqueue(msg posthog.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if capture, ok := msg.(posthog.Capture); ok {
		m.events = append(m.events, capture)
	}
	return nil
}

func (m *mockEnqueuer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockEnqueuer) getEvents() []posthog.Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]posthog.Capture(nil), m.events...)
}

func newTestClient(cfg *Config, version string) (*PostHogClient, *mockEnqueuer) {
	mock := &mockEnqueuer{}
	return newPostHogClientWithEnqueuer(mock, cfg, version), mock
}

func TestPostHogClient_Track_WhenEnabled(t *testing.T) {
	client, mock := newTestClient(&Config{Enabled: true, AnonymousID: "anon-123"}, "1.2.3")

	client.Track(EventGenerationCompleted, Generation{
		Provider: "xai",
		Model:    "grok-4-0709",
		Language: "python",
		Score:    8,
		Approved: true,
		Tokens:   1500,
		Duration: 2500 * time.Millisecond,
	}.Properties())

	events := mock.getEvents()
	require.Len(t, events, 1)
	event := events[0]

	assert.Equal(t, EventGenerationCompleted, event.Event)
	assert.Equal(t, "anon-123", event.DistinctId)
	assert.Equal(t, "python", event.Properties["language"])
	assert.Equal(t, 8, event.Properties["quality_score"])
	assert.Equal(t, int64(2500), event.Properties["duration_ms"])
	assert.Equal(t, runtime.GOOS, event.Properties["os"])
	assert.Equal(t, runtime.GOARCH, event.Properties["arch"])
	assert.Equal(t, "1.2.3", event.Properties["cli_version"])
	assert.Equal(t, false, event.Properties["$process_person_profile"])
}

func TestPostHogClient_Track_WhenDisabled(t *testing.T) {
	client, mock := newTestClient(&Config{Enabled: false, AnonymousID: "anon-123"}, "1.0.0")

	client.Track(EventCommandExecuted, nil)

	assert.Empty(t, mock.getEvents())
}

func TestPostHogClient_Close(t *testing.T) {
	client, mock := newTestClient(&Config{Enabled: true, AnonymousID: "x"}, "1.0.0")

	require.NoError(t, client.Close())
	assert.True(t, mock.closed)

	// Closed clients drop events and close only once.
	client.Track(EventCommandExecuted, nil)
	assert.Empty(t, mock.getEvents())
	assert.NoError(t, client.Close())
}

func TestNewClient_NoopWithoutKeyOrConsent(t *testing.T) {
	c, err := NewClient(ClientConfig{APIKey: "", Config: &Config{Enabled: true}})
	require.NoError(t, err)
	assert.IsType(t, NoopClient{}, c)

	c, err = NewClient(ClientConfig{APIKey: "phc_test", Config: &Config{Enabled: false}})
	require.NoError(t, err)
	assert.IsType(t, NoopClient{}, c)

	c, err = NewClient(ClientConfig{APIKey: "phc_test", Config: nil})
	require.NoError(t, err)
	assert.IsType(t, NoopClient{}, c)
}

func TestEventsNeverCarryContent(t *testing.T) {
	for _, props := range []Properties{Generation{}.Properties(), Failure{}.Properties()} {
		for _, forbidden := range []string{"goal", "prompt", "code", "tests"} {
			_, ok := props[forbidden]
			assert.False(t, ok, "property %q must not be sent", forbidden)
		}
	}
}

func TestGlobalTrack(t *testing.T) {
	client, mock := newTestClient(&Config{Enabled: true, AnonymousID: "x"}, "1.0.0")
	SetClient(client)
	t.Cleanup(func() { SetClient(NewNoopClient()) })

	Track(EventGenerationFailed, Failure{Step: "code", ErrorType: "api"}.Properties())
	require.Len(t, mock.getEvents(), 1)
	assert.Equal(t, "code", mock.getEvents()[0].Properties["step"])

	require.NoError(t, Shutdown())
	assert.True(t, mock.closed)
}

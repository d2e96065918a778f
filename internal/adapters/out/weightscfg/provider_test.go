package weightscfg_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dispatch/internal/adapters/out/weightscfg"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWeightsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileProvider_ReadsConfiguredWeights(t *testing.T) {
	path := writeWeightsFile(t,
		`{"distance": 0.5, "rating": 0.2, "workload": 0.2, "response": 0.1}`)

	provider := weightscfg.NewFileProvider(path, time.Minute, nil)

	w := provider.Weights()
	assert.InDelta(t, 0.5, w.Distance, 1e-9)
	assert.InDelta(t, 0.2, w.Rating, 1e-9)
	assert.InDelta(t, 0.2, w.Workload, 1e-9)
	assert.InDelta(t, 0.1, w.Response, 1e-9)
}

func TestFileProvider_MissingFileFallsBackToDefaults(t *testing.T) {
	provider := weightscfg.NewFileProvider(
		filepath.Join(t.TempDir(), "absent.json"), time.Minute, nil)

	assert.Equal(t, services.DefaultWeights(), provider.Weights())
}

func TestFileProvider_InvalidContentFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"distance": 0.4,`},
		{"negative weight", `{"distance": -0.4, "rating": 0.25, "workload": 0.2, "response": 0.15}`},
		{"all zero", `{"distance": 0, "rating": 0, "workload": 0, "response": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWeightsFile(t, tt.content)

			provider := weightscfg.NewFileProvider(path, time.Minute, nil)

			assert.Equal(t, services.DefaultWeights(), provider.Weights())
		})
	}
}

func TestFileProvider_ReloadsAfterRefreshInterval(t *testing.T) {
	path := writeWeightsFile(t,
		`{"distance": 0.4, "rating": 0.25, "workload": 0.2, "response": 0.15}`)

	provider := weightscfg.NewFileProvider(path, 10*time.Millisecond, nil)
	assert.InDelta(t, 0.4, provider.Weights().Distance, 1e-9)

	require.NoError(t, os.WriteFile(path,
		[]byte(`{"distance": 0.7, "rating": 0.1, "workload": 0.1, "response": 0.1}`), 0o644))

	assert.Eventually(t, func() bool {
		return provider.Weights().Distance > 0.69
	}, time.Second, 10*time.Millisecond)
}

func TestFileProvider_CachesWithinRefreshInterval(t *testing.T) {
	path := writeWeightsFile(t,
		`{"distance": 0.4, "rating": 0.25, "workload": 0.2, "response": 0.15}`)

	provider := weightscfg.NewFileProvider(path, time.Hour, nil)
	assert.InDelta(t, 0.4, provider.Weights().Distance, 1e-9)

	// A rewrite inside the TTL must not be visible yet.
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"distance": 0.9, "rating": 0.05, "workload": 0.03, "response": 0.02}`), 0o644))

	assert.InDelta(t, 0.4, provider.Weights().Distance, 1e-9)
}

// Package weightscfg loads scoring weights from a JSON file so operators can
// retune dispatch without a redeploy. The file is re-read on a TTL; a missing
// or invalid file falls back to the built-in defaults and never fails a
// dispatch run.
package weightscfg

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"dispatch/internal/core/domain/services"
)

// errInvalidWeights rejects weight files that parse but cannot be used.
var errInvalidWeights = errors.New("weights must be non-negative with a positive sum")

// DefaultRefreshInterval bounds how stale a weight snapshot may get.
const DefaultRefreshInterval = 30 * time.Second

// FileProvider implements ports.WeightsProvider over a JSON file of the form
//
//	{"distance": 0.40, "rating": 0.25, "workload": 0.20, "response": 0.15}
//
// Reads are served from a cached snapshot guarded by a RWMutex; the file is
// consulted again only after the refresh interval elapses.
type FileProvider struct {
	path    string
	refresh time.Duration
	logger  *slog.Logger

	mu        sync.RWMutex
	current   services.Weights
	loadedAt  time.Time
	lastError string
}

// NewFileProvider creates a provider reading weights from path. A
// non-positive refresh falls back to DefaultRefreshInterval.
func NewFileProvider(path string, refresh time.Duration, logger *slog.Logger) *FileProvider {
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &FileProvider{
		path:    path,
		refresh: refresh,
		logger:  logger,
		current: services.DefaultWeights(),
	}
	p.reload()
	return p
}

// Weights returns the current weight snapshot, reloading the file when the
// cached snapshot expired. It never fails: unreadable or invalid
// configuration yields services.DefaultWeights.
func (p *FileProvider) Weights() services.Weights {
	p.mu.RLock()
	fresh := time.Since(p.loadedAt) < p.refresh
	snapshot := p.current
	p.mu.RUnlock()

	if fresh {
		return snapshot
	}

	p.reload()

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *FileProvider) reload() {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Another goroutine may have reloaded while we waited for the lock.
	if time.Since(p.loadedAt) < p.refresh && !p.loadedAt.IsZero() {
		return
	}
	p.loadedAt = time.Now()

	weights, err := readWeights(p.path)
	if err != nil {
		// Log each distinct failure once, not every refresh tick.
		if err.Error() != p.lastError {
			p.lastError = err.Error()
			p.logger.Warn("scoring weights unavailable, using defaults",
				"path", p.path, "error", err)
		}
		p.current = services.DefaultWeights()
		return
	}

	p.lastError = ""
	p.current = weights
}

func readWeights(path string) (services.Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.Weights{}, err
	}

	var weights services.Weights
	if err := json.Unmarshal(data, &weights); err != nil {
		return services.Weights{}, err
	}

	if !weights.IsValid() {
		return services.Weights{}, errInvalidWeights
	}

	return weights, nil
}

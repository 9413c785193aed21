package warmup

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/go_music_similarity/internal/ports"
)

// Config defines configuration for warming up the system.
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
		Iterations:  1000,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations. Warming the matcher and
// normalizer primes the buffer pools and compiled tables before the first
// real request arrives.
type Manager struct {
	logger      ports.Logger
	matchers    []ports.Matcher
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterMatcher adds a matcher to be warmed up.
func (wm *Manager) RegisterMatcher(m ports.Matcher) {
	wm.matchers = append(wm.matchers, m)
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (wm *Manager) RegisterNormalizer(n ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, n)
}

// Sample metadata pairs covering the main normalization paths: verbatim
// equality, annotation removal, typos and clear mismatches.
var samplePairs = [][2]string{
	{"Yesterday (Remastered 2009)", "Yesterday"},
	{"Bohemian Rhapsody", "Bohemian Rapsody"},
	{"Hotel California", "Stairway to Heaven"},
	{"Don't Stop Me Now - Live", "Don’t Stop Me Now"},
	{"Città Vuota", "Citta Vuota"},
	{"Track (Live)", "Track"},
}

// WarmUp runs the warmup process for all registered components.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.matchers)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.warmUpNormalizers(warmupCtx)
	wm.warmUpMatchers(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

func (wm *Manager) warmUpNormalizers(ctx context.Context) {
	if len(wm.normalizers) == 0 {
		return
	}
	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				pair := samplePairs[j%len(samplePairs)]
				for _, n := range wm.normalizers {
					_, _ = n.Normalize(pair[0])
					_, _ = n.Normalize(pair[1])
				}
			}
		}()
	}
	wg.Wait()
}

func (wm *Manager) warmUpMatchers(ctx context.Context) {
	if len(wm.matchers) == 0 {
		return
	}
	wm.logger.Debug("Warming up matchers", "count", len(wm.matchers))

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				pair := samplePairs[j%len(samplePairs)]
				for _, m := range wm.matchers {
					_ = m.Match(ctx, pair[0], pair[1])
				}
			}
		}()
	}
	wg.Wait()
}

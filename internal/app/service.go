// Package service provides the collection service that gathers server
// statistics for the exporter and the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/okian/mcstats/internal/domain/model"
	"github.com/okian/mcstats/internal/domain/projection"
	"github.com/okian/mcstats/internal/domain/stats"
	"github.com/okian/mcstats/pkg/logger"
	"github.com/okian/mcstats/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Roster lists the known players.
type Roster interface {
	List(ctx context.Context) []model.Player
}

// Files reads the server's world files.
type Files interface {
	WorldInfo(ctx context.Context) (model.WorldInfo, bool)
	PlayerData(ctx context.Context, id string) (model.PlayerData, bool)
	Stats(ctx context.Context, id string) (map[string]any, bool)
}

// Live reports state only the running server knows.
type Live interface {
	State(ctx context.Context) model.LiveState
	WorldMeta(ctx context.Context) (model.WorldInfo, bool)
}

// Service runs collection cycles.
type Service struct {
	mu sync.RWMutex

	// Sources
	roster Roster
	files  Files
	live   Live

	// Configuration
	workerCount int

	// State
	started       bool
	collections   uint64
	lastPlayers   int
	lastDuration  time.Duration
	lastCollected time.Time
	lastSkipped   int

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets how many players are processed concurrently.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLive adds a live state source. Without one the online roster is
// unknown and Forge families stay empty.
func WithLive(live Live) Option {
	return func(s *Service) {
		s.live = live
	}
}

// New constructs a Service over the given sources.
func New(roster Roster, files Files, opts ...Option) *Service {
	s := &Service{
		roster:      roster,
		files:       files,
		workerCount: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start marks the service ready to collect.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.started = true
	metrics.UpdateWorkerCount(s.workerCount)
	s.logger.Info(ctx, "collection service started",
		logger.Int("workers", s.workerCount),
		logger.Bool("live", s.live != nil),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "collection service stopped")
}

// Collect runs one cycle and returns every family in catalog order. A
// cancelled context abandons the players not yet processed; whatever
// finished is still projected.
func (s *Service) Collect(ctx context.Context) []projection.Family {
	start := time.Now()
	log := s.log()

	var (
		players []model.Player
		world   *model.WorldInfo
		live    model.LiveState
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		players = s.roster.List(gctx)
		return nil
	})
	g.Go(func() error {
		world = s.worldInfo(gctx)
		return nil
	})
	if s.live != nil {
		g.Go(func() error {
			live = s.live.State(gctx)
			return nil
		})
	}
	_ = g.Wait()

	results := make([]projection.PlayerResult, len(players))
	pg, pctx := errgroup.WithContext(ctx)
	pg.SetLimit(s.workerCount)
	for i, p := range players {
		results[i].Player = p
		pg.Go(func() error {
			if pctx.Err() != nil {
				return nil
			}
			results[i] = s.collectPlayer(pctx, p)
			return nil
		})
	}
	_ = pg.Wait()

	collected, skipped := 0, 0
	for _, r := range results {
		if r.Sheet != nil {
			collected++
			skipped += len(r.Sheet.Unclassified)
		}
	}
	if err := ctx.Err(); err != nil {
		log.Warn(ctx, "collection cut short",
			logger.Int("players", len(players)),
			logger.Int("collected", collected),
			logger.Error(err))
		metrics.RecordErrorByComponent("service", "collect_timeout")
	}

	families := projection.Project(projection.Input{Players: results, World: world, Live: live})

	elapsed := time.Since(start)
	metrics.RecordCollection(elapsed.Seconds(), collected)

	s.mu.Lock()
	s.collections++
	s.lastPlayers = len(players)
	s.lastDuration = elapsed
	s.lastCollected = time.Now()
	s.lastSkipped = skipped
	s.mu.Unlock()

	log.Debug(ctx, "collection finished",
		logger.Int("players", len(players)),
		logger.Int("collected", collected),
		logger.Int("unclassified", skipped),
		logger.Duration("duration", elapsed))
	return families
}

// worldInfo prefers level.dat and falls back to what the console reports.
func (s *Service) worldInfo(ctx context.Context) *model.WorldInfo {
	if info, ok := s.files.WorldInfo(ctx); ok {
		return &info
	}
	if s.live != nil {
		if info, ok := s.live.WorldMeta(ctx); ok {
			return &info
		}
	}
	return nil
}

func (s *Service) collectPlayer(ctx context.Context, p model.Player) projection.PlayerResult {
	log := s.log()
	raw, _ := s.files.Stats(ctx, p.ID)
	sheet := stats.Normalize(p, raw)

	for _, u := range sheet.Unclassified {
		log.Warn(ctx, "unclassified statistic",
			logger.String("player", p.Name),
			logger.String("key", u.Key),
			logger.Error(u.Reason))
	}
	if n := len(sheet.Unclassified); n > 0 {
		metrics.RecordUnclassifiedStats(sheet.Schema.String(), n)
	}

	result := projection.PlayerResult{Player: p, Sheet: sheet}
	if data, ok := s.files.PlayerData(ctx, p.ID); ok {
		result.Data = &data
	}
	return result
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Nop()
	}
	return s.logger
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"liveEnabled": s.live != nil,
		"collections": s.collections,
	}
	if s.collections > 0 {
		out["players"] = s.lastPlayers
		out["lastDurationSeconds"] = s.lastDuration.Seconds()
		out["lastCollectedAt"] = s.lastCollected.UTC().Format(time.RFC3339)
		out["unclassified"] = s.lastSkipped
	}
	return out
}

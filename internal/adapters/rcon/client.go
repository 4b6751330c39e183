package rcon

import (
	"context"
	"time"

	"github.com/okian/mcstats/internal/domain/model"
	"github.com/okian/mcstats/pkg/logger"
)

// Console commands.
const (
	cmdList       = "list"
	cmdDifficulty = "difficulty"
	cmdEntities   = "forge entity list"
	cmdMods       = "forge mods"
)

// Executor runs console commands. *Pool satisfies it.
type Executor interface {
	Execute(ctx context.Context, command string) (string, error)
}

// Client answers live-state questions. Every failure degrades to "no data";
// nothing is returned as an error.
type Client struct {
	exec        Executor
	forge       bool
	volatileTTL time.Duration
	staticTTL   time.Duration
	now         func() time.Time
	logger      logger.Logger

	online     *ttlValue[[]string]
	difficulty *ttlValue[int]
	entities   *ttlValue[[]model.EntityCount]
	mods       *ttlValue[[]model.ModVersion]
}

// NewClient creates a Client on top of exec.
func NewClient(exec Executor, opts ...Option) *Client {
	c := &Client{
		exec:        exec,
		volatileTTL: 60 * time.Second,
		staticTTL:   600 * time.Second,
		now:         time.Now,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("live")
	c.online = newTTLValue[[]string](c.volatileTTL, c.now)
	c.entities = newTTLValue[[]model.EntityCount](c.volatileTTL, c.now)
	c.difficulty = newTTLValue[int](c.staticTTL, c.now)
	c.mods = newTTLValue[[]model.ModVersion](c.staticTTL, c.now)
	return c
}

// OnlinePlayers returns the display names currently online. ok is false
// when the roster could not be obtained.
func (c *Client) OnlinePlayers(ctx context.Context) ([]string, bool) {
	online, err := c.online.get(ctx, func(ctx context.Context) ([]string, error) {
		reply, err := c.exec.Execute(ctx, cmdList)
		if err != nil {
			return nil, err
		}
		return parseList(reply)
	})
	if err != nil {
		c.logger.Warn(ctx, "online players unavailable", logger.Error(err))
		return nil, false
	}
	return online, true
}

// WorldMeta returns what the console reports about the world. Only the
// difficulty is available this way.
func (c *Client) WorldMeta(ctx context.Context) (model.WorldInfo, bool) {
	difficulty, err := c.difficulty.get(ctx, func(ctx context.Context) (int, error) {
		reply, err := c.exec.Execute(ctx, cmdDifficulty)
		if err != nil {
			return 0, err
		}
		return parseDifficulty(reply)
	})
	if err != nil {
		c.logger.Warn(ctx, "world meta unavailable", logger.Error(err))
		return model.WorldInfo{}, false
	}
	return model.WorldInfo{Difficulty: difficulty, DifficultyOnly: true}, true
}

// EntityCounts returns loaded entities per mod and type. Forge only.
func (c *Client) EntityCounts(ctx context.Context) ([]model.EntityCount, bool) {
	if !c.forge {
		return nil, false
	}
	counts, err := c.entities.get(ctx, func(ctx context.Context) ([]model.EntityCount, error) {
		reply, err := c.exec.Execute(ctx, cmdEntities)
		if err != nil {
			return nil, err
		}
		return parseEntities(reply), nil
	})
	if err != nil {
		c.logger.Warn(ctx, "entity counts unavailable", logger.Error(err))
		return nil, false
	}
	return counts, true
}

// InstalledMods returns installed mods and versions. Forge only.
func (c *Client) InstalledMods(ctx context.Context) ([]model.ModVersion, bool) {
	if !c.forge {
		return nil, false
	}
	mods, err := c.mods.get(ctx, func(ctx context.Context) ([]model.ModVersion, error) {
		reply, err := c.exec.Execute(ctx, cmdMods)
		if err != nil {
			return nil, err
		}
		return parseMods(reply), nil
	})
	if err != nil {
		c.logger.Warn(ctx, "installed mods unavailable", logger.Error(err))
		return nil, false
	}
	return mods, true
}

// State gathers everything the console can report for one cycle.
func (c *Client) State(ctx context.Context) model.LiveState {
	var s model.LiveState
	if online, ok := c.OnlinePlayers(ctx); ok {
		s.Online = online
	}
	if entities, ok := c.EntityCounts(ctx); ok {
		s.Entities = entities
	}
	if mods, ok := c.InstalledMods(ctx); ok {
		s.Mods = mods
	}
	return s
}

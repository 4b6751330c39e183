// Package world reads the files a server keeps under its root: the
// properties file, the world's level.dat, and per-player stats and data.
package world

import (
	"context"
	"path/filepath"

	"github.com/okian/mcstats/internal/adapters/snapshot"
	"github.com/okian/mcstats/internal/domain/model"
	"github.com/okian/mcstats/pkg/logger"
)

const (
	propertiesFile = "server.properties"
	levelFile      = "level.dat"
	statsDir       = "stats"
	playerDataDir  = "playerdata"

	levelNameKey = "level-name"
	defaultWorld = "world"
)

// levelDat is the subset of level.dat that is exported.
type levelDat struct {
	Data struct {
		Version struct {
			Name string `nbt:"Name"`
		} `nbt:"Version"`
		Difficulty int8  `nbt:"Difficulty"`
		GameType   int32 `nbt:"GameType"`
		Hardcore   int8  `nbt:"hardcore"`
	} `nbt:"Data"`
}

// playerDat is the subset of playerdata/<uuid>.dat that is exported.
type playerDat struct {
	FoodLevel           int32   `nbt:"foodLevel"`
	FoodSaturationLevel float32 `nbt:"foodSaturationLevel"`
	Health              float32 `nbt:"Health"`
	Score               int32   `nbt:"Score"`
	XpLevel             int32   `nbt:"XpLevel"`
	XpTotal             int32   `nbt:"XpTotal"`
}

// Reader resolves and caches the server's files. It is safe for concurrent
// use.
type Reader struct {
	root   string
	world  string
	logger logger.Logger

	properties *snapshot.Cache[map[string]string]
	levels     *snapshot.Cache[levelDat]
	players    *snapshot.Cache[playerDat]
	stats      *snapshot.Cache[map[string]any]
}

// New creates a Reader for the server installed at root.
func New(root string, opts ...Option) *Reader {
	r := &Reader{root: root, logger: logger.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	withLog := snapshot.WithLogger(r.logger)
	r.properties = snapshot.New("properties", snapshot.DecodeProperties, withLog)
	r.levels = snapshot.New("level", snapshot.DecodeNBT[levelDat], withLog)
	r.players = snapshot.New("playerdata", snapshot.DecodeNBT[playerDat], withLog)
	r.stats = snapshot.New("stats", snapshot.DecodeJSON[map[string]any], withLog)
	r.logger = r.logger.Named("world")
	return r
}

// Properties returns the parsed server.properties.
func (r *Reader) Properties(ctx context.Context) (map[string]string, bool) {
	return r.properties.Fetch(ctx, filepath.Join(r.root, propertiesFile))
}

// WorldDir returns the directory of the loaded world: the configured name,
// else level-name from server.properties, else "world".
func (r *Reader) WorldDir(ctx context.Context) string {
	name := r.world
	if name == "" {
		if props, ok := r.Properties(ctx); ok {
			name = props[levelNameKey]
		}
	}
	if name == "" {
		name = defaultWorld
	}
	return filepath.Join(r.root, name)
}

// WorldInfo reads level.dat.
func (r *Reader) WorldInfo(ctx context.Context) (model.WorldInfo, bool) {
	level, ok := r.levels.Fetch(ctx, filepath.Join(r.WorldDir(ctx), levelFile))
	if !ok {
		return model.WorldInfo{}, false
	}
	return model.WorldInfo{
		Version:    level.Data.Version.Name,
		Difficulty: int(level.Data.Difficulty),
		GameMode:   int(level.Data.GameType),
		Hardcore:   level.Data.Hardcore != 0,
	}, true
}

// PlayerData reads a player's vitals.
func (r *Reader) PlayerData(ctx context.Context, id string) (model.PlayerData, bool) {
	p, ok := r.players.Fetch(ctx, filepath.Join(r.WorldDir(ctx), playerDataDir, id+".dat"))
	if !ok {
		return model.PlayerData{}, false
	}
	return model.PlayerData{
		FoodLevel:           float64(p.FoodLevel),
		FoodSaturationLevel: float64(p.FoodSaturationLevel),
		Health:              float64(p.Health),
		Score:               float64(p.Score),
		XpLevel:             float64(p.XpLevel),
		XpTotal:             float64(p.XpTotal),
	}, true
}

// Stats returns a player's raw statistics document. An absent file yields
// (nil, false), which normalizes to empty statistics.
func (r *Reader) Stats(ctx context.Context, id string) (map[string]any, bool) {
	return r.stats.Fetch(ctx, filepath.Join(r.WorldDir(ctx), statsDir, id+".json"))
}

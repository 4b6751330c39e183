// Package identity resolves the set of known players from the server's
// name caches.
package identity

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/okian/mcstats/internal/adapters/snapshot"
	"github.com/okian/mcstats/internal/domain/model"
	"github.com/okian/mcstats/pkg/logger"
)

// Name cache files, tried in order.
const (
	UserCacheFile     = "usercache.json"
	UsernameCacheFile = "usernamecache.json"
)

// Directory lists known players. It is safe for concurrent use.
type Directory struct {
	root   string
	files  []string
	cache  *snapshot.Cache[any]
	logger logger.Logger
}

// New creates a Directory reading name caches under root.
func New(root string, opts ...Option) *Directory {
	d := &Directory{
		root:   root,
		files:  []string{UserCacheFile, UsernameCacheFile},
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.cache == nil {
		d.cache = snapshot.New("identity", snapshot.DecodeJSON[any], snapshot.WithLogger(d.logger))
	}
	d.logger = d.logger.Named("identity")
	return d
}

// List returns the known players sorted by id. The first name cache that
// exists is used; when none does the roster is empty.
func (d *Directory) List(ctx context.Context) []model.Player {
	for _, name := range d.files {
		path := filepath.Join(d.root, name)
		doc, ok := d.cache.Fetch(ctx, path)
		if !ok {
			continue
		}
		return d.normalize(ctx, path, decodeRoster(doc))
	}
	d.logger.Debug(ctx, "no name cache found", logger.String("root", d.root))
	return []model.Player{}
}

type rosterEntry struct {
	id   string
	name string
}

// decodeRoster accepts both layouts: an array of {"name","uuid"} objects and
// an object mapping uuid to name.
func decodeRoster(doc any) []rosterEntry {
	var out []rosterEntry
	switch v := doc.(type) {
	case []any:
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				out = append(out, rosterEntry{})
				continue
			}
			id, _ := obj["uuid"].(string)
			name, _ := obj["name"].(string)
			out = append(out, rosterEntry{id: id, name: name})
		}
	case map[string]any:
		// sorted so repeated ids resolve the same way every cycle
		for _, id := range slices.Sorted(maps.Keys(v)) {
			name, _ := v[id].(string)
			out = append(out, rosterEntry{id: id, name: name})
		}
	}
	return out
}

func (d *Directory) normalize(ctx context.Context, path string, entries []rosterEntry) []model.Player {
	byID := make(map[string]string, len(entries))
	for _, e := range entries {
		id, err := uuid.Parse(e.id)
		if err != nil || e.name == "" {
			d.logger.Warn(ctx, "skipping name cache entry",
				logger.String("path", path),
				logger.String("uuid", e.id),
				logger.String("name", e.name))
			continue
		}
		// first occurrence wins for repeated ids
		key := id.String()
		if _, dup := byID[key]; !dup {
			byID[key] = e.name
		}
	}

	players := make([]model.Player, 0, len(byID))
	for id, name := range byID {
		players = append(players, model.Player{ID: id, Name: name})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players
}


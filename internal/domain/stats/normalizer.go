package stats

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/okian/mcstats/internal/domain/model"
)

// Schema identifies which statistics file layout was detected.
type Schema uint8

const (
	SchemaNone Schema = iota
	SchemaLegacy
	SchemaModern
)

// String returns the schema name used in logs and metric labels.
func (s Schema) String() string {
	switch s {
	case SchemaLegacy:
		return "legacy"
	case SchemaModern:
		return "modern"
	default:
		return "none"
	}
}

// Record is one canonical measurement for a player.
type Record struct {
	Player     model.Player
	Bucket     Bucket
	Qualifiers []string
	Value      float64
}

// Sheet is the normalized output for one player: one record list per bucket,
// all present even when empty, plus the keys that were skipped.
type Sheet struct {
	Player       model.Player
	Schema       Schema
	Unclassified []Unclassified

	records [bucketCount][]Record
	seen    map[string]struct{}
}

func newSheet(player model.Player) *Sheet {
	s := &Sheet{Player: player, seen: make(map[string]struct{})}
	for b := Mined; b < bucketCount; b++ {
		s.records[b] = []Record{}
	}
	return s
}

// Records returns the records of one bucket in classification order.
func (s *Sheet) Records(b Bucket) []Record {
	if !b.Valid() {
		return nil
	}
	return s.records[b]
}

// Len returns the total number of records across all buckets.
func (s *Sheet) Len() int {
	n := 0
	for b := Mined; b < bucketCount; b++ {
		n += len(s.records[b])
	}
	return n
}

func (s *Sheet) add(key string, b Bucket, value float64, qualifiers ...string) {
	dedupe := b.String() + "\x00" + strings.Join(qualifiers, "\x00")
	if _, dup := s.seen[dedupe]; dup {
		s.reject(key, ErrDuplicate)
		return
	}
	s.seen[dedupe] = struct{}{}
	s.records[b] = append(s.records[b], Record{
		Player:     s.Player,
		Bucket:     b,
		Qualifiers: qualifiers,
		Value:      value,
	})
}

func (s *Sheet) reject(key string, reason error) {
	s.Unclassified = append(s.Unclassified, Unclassified{Key: key, Reason: reason})
}

// Normalize classifies a player's raw statistics snapshot. A nil or empty
// snapshot yields a sheet whose buckets are all empty. Normalize is a pure
// function of its input: keys are walked in sorted order.
func Normalize(player model.Player, raw map[string]any) *Sheet {
	s := newSheet(player)
	s.Schema = DetectSchema(raw)

	switch s.Schema {
	case SchemaModern:
		walkModern(s, raw[modernRootKey])
	case SchemaLegacy:
		walkLegacy(s, raw)
	}

	s.seen = nil
	return s
}

const modernRootKey = "stats"

// DetectSchema picks the walk for a raw snapshot.
func DetectSchema(raw map[string]any) Schema {
	if _, ok := raw[modernRootKey]; ok {
		return SchemaModern
	}
	if len(raw) > 0 {
		return SchemaLegacy
	}
	return SchemaNone
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// numeric converts a decoded JSON value to float64.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ticksToSeconds converts a tick count to seconds; zero stays exactly zero.
func ticksToSeconds(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v / ticksPerSecond
}

package stats

import (
	"strings"
	"unicode"
)

const (
	legacyStatPrefix        = "stat"
	legacyAchievementPrefix = "achievement"
)

// walkLegacy classifies flat "stat.verb[.namespace].item" keys.
func walkLegacy(s *Sheet, raw map[string]any) {
	for _, key := range sortedKeys(raw) {
		segments := strings.Split(key, ".")
		switch segments[0] {
		case legacyStatPrefix:
		case legacyAchievementPrefix:
			// advancement progress shares the file but is not a statistic
			continue
		default:
			s.reject(key, ErrUnknownStat)
			continue
		}

		value, ok := numeric(raw[key])
		if !ok {
			s.reject(key, ErrNotNumeric)
			continue
		}

		verb, namespace, item := splitLegacy(segments[1:])
		verb = camelToSnake(verb)
		if alias, found := legacyVerbs[verb]; found {
			verb = alias
		}

		if b, isCategory := categoryBuckets[verb]; isCategory {
			if namespace == "" && item == "" {
				if b == Dropped {
					// "stat.drop" is the aggregate of the per-item drops
					continue
				}
				s.reject(key, ErrUnknownStat)
				continue
			}
			s.add(key, b, value, namespace, item)
			continue
		}

		if namespace != "" || item != "" {
			s.reject(key, ErrUnknownStat)
			continue
		}
		addCustom(s, key, verb, value)
	}
}

// splitLegacy returns (verb, namespace, item) for the segments after "stat".
// Two segments default the namespace; extra segments belong to the item.
func splitLegacy(rest []string) (verb, namespace, item string) {
	switch {
	case len(rest) == 0:
		return "", "", ""
	case len(rest) == 1:
		return rest[0], "", ""
	case len(rest) == 2:
		return rest[0], baseNamespace, rest[1]
	default:
		return rest[0], rest[1], strings.Join(rest[2:], ".")
	}
}

// camelToSnake converts "craftingTableInteraction" to
// "crafting_table_interaction". Already snake-case input is unchanged.
func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

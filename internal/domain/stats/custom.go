package stats

import "strings"

// customMatch is the outcome of classifying a bare custom statistic name.
type customMatch struct {
	bucket    Bucket
	qualifier string
	ticks     bool // value is in ticks and converts to seconds
	skip      bool // known, intentionally not recorded
}

// classifyCustom applies the ordered custom rules to a snake-case name.
// ok is false when no rule claims the name.
func classifyCustom(name string) (m customMatch, ok bool) {
	switch {
	case strings.HasSuffix(name, "_one_cm"):
		return customMatch{bucket: Distance, qualifier: strings.TrimSuffix(name, "_one_cm")}, true
	case strings.HasPrefix(name, "clean_"):
		return customMatch{bucket: Clean, qualifier: strings.TrimPrefix(name, "clean_")}, true
	case strings.HasPrefix(name, "time_since_"):
		return customMatch{bucket: Time, qualifier: strings.TrimPrefix(name, "time_since_"), ticks: true}, true
	}

	if q, found := ticksAliases[name]; found {
		return customMatch{bucket: Time, qualifier: q, ticks: true}, true
	}
	if target, found := interactAliases[name]; found {
		return customMatch{bucket: Interact, qualifier: target}, true
	}
	if strings.HasPrefix(name, "interact_with_") {
		return customMatch{bucket: Interact, qualifier: strings.TrimPrefix(name, "interact_with_")}, true
	}
	if _, found := ignoredCustom[name]; found {
		return customMatch{skip: true}, true
	}
	if b, found := ParseBucket(name); found && b.Kind() == KindScalar {
		return customMatch{bucket: b}, true
	}
	return customMatch{}, false
}

// addCustom records a custom statistic on the sheet, or rejects it.
func addCustom(s *Sheet, key, name string, value float64) {
	m, ok := classifyCustom(name)
	switch {
	case !ok:
		s.reject(key, ErrUnknownStat)
	case m.skip:
	case m.ticks:
		s.add(key, m.bucket, ticksToSeconds(value), m.qualifier)
	case m.bucket.Kind() == KindScalar:
		s.add(key, m.bucket, value)
	default:
		s.add(key, m.bucket, value, m.qualifier)
	}
}

package stats

import "strings"

// walkModern classifies the nested {"category": {"ns:item": n}} section.
func walkModern(s *Sheet, section any) {
	categories, ok := section.(map[string]any)
	if !ok {
		s.reject(modernRootKey, ErrMalformed)
		return
	}

	for _, category := range sortedKeys(categories) {
		entries, ok := categories[category].(map[string]any)
		if !ok {
			s.reject(category, ErrMalformed)
			continue
		}
		_, bare := splitNamespaced(category)

		for _, key := range sortedKeys(entries) {
			path := category + "/" + key
			value, ok := numeric(entries[key])
			if !ok {
				s.reject(path, ErrNotNumeric)
				continue
			}
			namespace, item := splitNamespaced(key)

			if bare == customCategory {
				addCustom(s, path, item, value)
				continue
			}
			b, known := categoryBuckets[bare]
			if !known {
				s.reject(path, ErrUnknownCategory)
				continue
			}
			s.add(path, b, value, namespace, item)
		}
	}
}

// splitNamespaced splits "ns:name" at the first separator. A name without a
// namespace belongs to the base game.
func splitNamespaced(key string) (namespace, name string) {
	if ns, rest, found := strings.Cut(key, ":"); found {
		return ns, rest
	}
	return baseNamespace, key
}

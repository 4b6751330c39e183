package model

// EntityCount is one line of the Forge entity listing.
type EntityCount struct {
	Mod    string
	Entity string
	Count  float64
}

// ModVersion is one installed mod with its version string.
type ModVersion struct {
	Mod     string
	Version string
}

// LiveState is what the live query channel reported during one cycle.
// A nil Online slice means the roster is unknown (channel disabled or
// failing), which differs from an empty server.
type LiveState struct {
	Online   []string
	Entities []EntityCount
	Mods     []ModVersion
}

// OnlineKnown reports whether the online roster was obtained.
func (s LiveState) OnlineKnown() bool {
	return s.Online != nil
}

// IsOnline reports whether the display name is currently connected.
func (s LiveState) IsOnline(name string) bool {
	for _, n := range s.Online {
		if n == name {
			return true
		}
	}
	return false
}

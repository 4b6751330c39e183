package model

import "strconv"

// WorldInfo describes the loaded world. Difficulty and GameMode keep the
// numeric codes stored in level.dat.
type WorldInfo struct {
	Version    string
	Difficulty int
	GameMode   int
	Hardcore   bool

	// DifficultyOnly marks info reported by the console, which knows the
	// difficulty but not the game mode or hardcore flag.
	DifficultyOnly bool
}

// Labels returns the label values exposed for the world info gauge, in the
// order version, difficulty, game_mode, hardcore. Unknown values are empty.
func (w WorldInfo) Labels() []string {
	if w.DifficultyOnly {
		return []string{w.Version, strconv.Itoa(w.Difficulty), "", ""}
	}
	hardcore := "0"
	if w.Hardcore {
		hardcore = "1"
	}
	return []string{w.Version, strconv.Itoa(w.Difficulty), strconv.Itoa(w.GameMode), hardcore}
}

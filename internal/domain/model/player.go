// Package model contains domain models passed between layers.
package model

// Player identifies a known player. ID is the stable UUID in canonical
// dashed form; Name is the display name and may change between cycles.
type Player struct {
	ID   string
	Name string
}

// PlayerData holds the vitals read from a player's binary data file.
type PlayerData struct {
	FoodLevel           float64
	FoodSaturationLevel float64
	Health              float64
	Score               float64
	XpLevel             float64
	XpTotal             float64
}

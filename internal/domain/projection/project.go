package projection

import (
	"github.com/okian/mcstats/internal/domain/model"
	"github.com/okian/mcstats/internal/domain/stats"
)

const namePrefix = "mc_"

// Family names outside the per-bucket statistics.
const (
	FamilyFoodLevel      = namePrefix + "player_food_level"
	FamilyFoodSaturation = namePrefix + "player_food_saturation_level"
	FamilyHealth         = namePrefix + "player_health"
	FamilyScore          = namePrefix + "player_score"
	FamilyXpLevel        = namePrefix + "player_xp_level"
	FamilyXp             = namePrefix + "player_xp"
	FamilyPlayersOnline  = namePrefix + "players_online"
	FamilyPlayerUUID     = namePrefix + "player_uuid"
	FamilyWorldInfos     = namePrefix + "world_infos"
	FamilyEntitiesLoaded = namePrefix + "entities_loaded"
	FamilyModsInstalled  = namePrefix + "mods_installed"
)

// PlayerResult is what one player's collection produced. A nil Sheet means
// the player was not processed this cycle; a nil Data means no data file.
type PlayerResult struct {
	Player model.Player
	Sheet  *stats.Sheet
	Data   *model.PlayerData
}

// Input is everything one cycle gathered.
type Input struct {
	Players []PlayerResult
	World   *model.WorldInfo
	Live    model.LiveState
}

// StatFamilyName returns the family name of a statistics bucket.
func StatFamilyName(b stats.Bucket) string {
	return namePrefix + "player_" + b.String()
}

// Project builds every family in catalog order. Families with nothing to
// report are still returned, with no samples.
func Project(in Input) []Family {
	families := make([]Family, 0, len(stats.All())+11)
	families = append(families, statFamilies(in.Players)...)
	families = append(families, vitalFamilies(in.Players)...)
	families = append(families,
		onlineFamily(in.Players, in.Live),
		uuidFamily(in.Players),
		worldFamily(in.World),
		entityFamily(in.Live.Entities),
		modFamily(in.Live.Mods),
	)
	return families
}

func statFamilies(players []PlayerResult) []Family {
	buckets := stats.All()
	out := make([]Family, len(buckets))
	for i, b := range buckets {
		out[i] = Family{
			Name:   StatFamilyName(b),
			Help:   statHelp(b),
			Type:   Counter,
			Labels: statLabels(b),
		}
	}
	for _, p := range players {
		if p.Sheet == nil {
			continue
		}
		for i, b := range buckets {
			for _, r := range p.Sheet.Records(b) {
				labels := make([]string, 0, 1+len(r.Qualifiers))
				labels = append(labels, p.Player.Name)
				labels = append(labels, r.Qualifiers...)
				out[i].add(r.Value, labels...)
			}
		}
	}
	return out
}

// statLabels returns the label names of a bucket's family.
func statLabels(b stats.Bucket) []string {
	switch b {
	case stats.Killed, stats.KilledBy:
		return []string{"player", "mod", "entity"}
	case stats.Distance, stats.Time:
		return []string{"player", "type"}
	case stats.Interact:
		return []string{"player", "target"}
	case stats.Clean:
		return []string{"player", "item"}
	}
	if b.Kind() == stats.KindCategory {
		return []string{"player", "mod", "item"}
	}
	return []string{"player"}
}

func statHelp(b stats.Bucket) string {
	switch b {
	case stats.Distance:
		return "Distance travelled by mode of travel, in centimetres"
	case stats.Time:
		return "Time statistics, in seconds"
	case stats.Interact:
		return "Interactions with blocks"
	case stats.Clean:
		return "Items cleaned in a cauldron"
	case stats.Killed:
		return "Entities killed"
	case stats.KilledBy:
		return "Deaths by killing entity"
	}
	if b.Kind() == stats.KindCategory {
		return "Items " + b.String() + " by the player"
	}
	return "Player statistic " + b.String()
}

type vital struct {
	name string
	help string
	typ  Type
	get  func(model.PlayerData) float64
}

var vitals = []vital{
	{FamilyFoodLevel, "Food level", Gauge, func(d model.PlayerData) float64 { return d.FoodLevel }},
	{FamilyFoodSaturation, "Food saturation level", Gauge, func(d model.PlayerData) float64 { return d.FoodSaturationLevel }},
	{FamilyHealth, "Health", Gauge, func(d model.PlayerData) float64 { return d.Health }},
	{FamilyScore, "Score", Gauge, func(d model.PlayerData) float64 { return d.Score }},
	{FamilyXpLevel, "Experience level", Gauge, func(d model.PlayerData) float64 { return d.XpLevel }},
	{FamilyXp, "Total experience", Counter, func(d model.PlayerData) float64 { return d.XpTotal }},
}

func vitalFamilies(players []PlayerResult) []Family {
	out := make([]Family, len(vitals))
	for i, v := range vitals {
		out[i] = Family{Name: v.name, Help: v.help, Type: v.typ, Labels: []string{"player"}}
		for _, p := range players {
			if p.Data != nil {
				out[i].add(v.get(*p.Data), p.Player.Name)
			}
		}
	}
	return out
}

// onlineFamily reports 1 or 0 for every known player. When the online
// roster is unknown it reports nothing rather than all zeros.
func onlineFamily(players []PlayerResult, live model.LiveState) Family {
	f := Family{Name: FamilyPlayersOnline, Help: "Whether the player is online", Type: Gauge, Labels: []string{"player"}}
	if !live.OnlineKnown() {
		return f
	}
	for _, p := range players {
		value := 0.0
		if live.IsOnline(p.Player.Name) {
			value = 1
		}
		f.add(value, p.Player.Name)
	}
	return f
}

func uuidFamily(players []PlayerResult) Family {
	f := Family{Name: FamilyPlayerUUID, Help: "Player uuid and display name", Type: Gauge, Labels: []string{"uuid", "player"}}
	for _, p := range players {
		f.add(1, p.Player.ID, p.Player.Name)
	}
	return f
}

func worldFamily(world *model.WorldInfo) Family {
	f := Family{Name: FamilyWorldInfos, Help: "World version, difficulty, game mode and hardcore flag", Type: Gauge,
		Labels: []string{"version", "difficulty", "game_mode", "hardcore"}}
	if world != nil {
		f.add(1, world.Labels()...)
	}
	return f
}

func entityFamily(entities []model.EntityCount) Family {
	f := Family{Name: FamilyEntitiesLoaded, Help: "Loaded entities by mod and type", Type: Gauge, Labels: []string{"mod", "entity"}}
	seen := make(map[[2]string]struct{}, len(entities))
	for _, e := range entities {
		key := [2]string{e.Mod, e.Entity}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		f.add(e.Count, e.Mod, e.Entity)
	}
	return f
}

func modFamily(mods []model.ModVersion) Family {
	f := Family{Name: FamilyModsInstalled, Help: "Installed mods and versions", Type: Gauge, Labels: []string{"mod", "version"}}
	seen := make(map[[2]string]struct{}, len(mods))
	for _, m := range mods {
		key := [2]string{m.Mod, m.Version}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		f.add(1, m.Mod, m.Version)
	}
	return f
}

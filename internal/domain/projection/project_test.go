package projection_test

import (
	"testing"

	"github.com/okian/mcstats/internal/domain/model"
	"github.com/okian/mcstats/internal/domain/projection"
	"github.com/okian/mcstats/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	playerA = model.Player{ID: "069a79f4-44e9-4726-a5be-fca90e38aaf5", Name: "A"}
	playerB = model.Player{ID: "853c80ef-3c37-49fd-aa49-938b674adae6", Name: "B"}
)

func family(families []projection.Family, name string) projection.Family {
	for _, f := range families {
		if f.Name == name {
			return f
		}
	}
	return projection.Family{}
}

func TestProjectOnline(t *testing.T) {
	Convey("Given known players A and B", t, func() {
		players := []projection.PlayerResult{{Player: playerA}, {Player: playerB}}

		Convey("When only A is online", func() {
			out := projection.Project(projection.Input{
				Players: players,
				Live:    model.LiveState{Online: []string{"A"}},
			})

			Convey("Then the online family has exactly (A,1) and (B,0)", func() {
				f := family(out, projection.FamilyPlayersOnline)
				So(f.Samples, ShouldResemble, []projection.Sample{
					{Labels: []string{"A"}, Value: 1},
					{Labels: []string{"B"}, Value: 0},
				})
			})
		})

		Convey("When the online roster is unknown", func() {
			out := projection.Project(projection.Input{Players: players})

			Convey("Then the family is present with no entries", func() {
				f := family(out, projection.FamilyPlayersOnline)
				So(f.Name, ShouldEqual, projection.FamilyPlayersOnline)
				So(f.Samples, ShouldBeEmpty)
			})
		})

		Convey("When the server is empty", func() {
			out := projection.Project(projection.Input{Players: players, Live: model.LiveState{Online: []string{}}})

			Convey("Then every player reports 0", func() {
				f := family(out, projection.FamilyPlayersOnline)
				So(f.Samples, ShouldHaveLength, 2)
				So(f.Samples[0].Value, ShouldEqual, 0)
				So(f.Samples[1].Value, ShouldEqual, 0)
			})
		})
	})
}

func TestProjectStats(t *testing.T) {
	Convey("Given a normalized sheet", t, func() {
		sheet := stats.Normalize(playerA, map[string]any{"stats": map[string]any{
			"minecraft:mined":     map[string]any{"minecraft:stone": 5},
			"minecraft:killed_by": map[string]any{"minecraft:zombie": 1},
			"minecraft:custom": map[string]any{
				"minecraft:walk_one_cm":      100,
				"minecraft:time_since_death": 40,
				"minecraft:jump":             7,
			},
		}})
		data := model.PlayerData{FoodLevel: 20, Health: 18, XpTotal: 42}
		out := projection.Project(projection.Input{
			Players: []projection.PlayerResult{
				{Player: playerA, Sheet: sheet, Data: &data},
				{Player: playerB},
			},
		})

		Convey("Then families appear in catalog order, including empty ones", func() {
			buckets := stats.All()
			So(len(out), ShouldEqual, len(buckets)+11)
			for i, b := range buckets {
				So(out[i].Name, ShouldEqual, projection.StatFamilyName(b))
				So(out[i].Type, ShouldEqual, projection.Counter)
			}
			So(out[len(out)-1].Name, ShouldEqual, projection.FamilyModsInstalled)
		})

		Convey("Then category records carry player, mod and item", func() {
			f := family(out, "mc_player_mined")
			So(f.Labels, ShouldResemble, []string{"player", "mod", "item"})
			So(f.Samples, ShouldResemble, []projection.Sample{{Labels: []string{"A", "minecraft", "stone"}, Value: 5}})

			f = family(out, "mc_player_killed_by")
			So(f.Labels, ShouldResemble, []string{"player", "mod", "entity"})
			So(f.Samples, ShouldHaveLength, 1)
		})

		Convey("Then qualified and scalar records carry their labels", func() {
			f := family(out, "mc_player_distance")
			So(f.Labels, ShouldResemble, []string{"player", "type"})
			So(f.Samples[0].Labels, ShouldResemble, []string{"A", "walk"})

			f = family(out, "mc_player_time")
			So(f.Samples[0].Value, ShouldEqual, 2)

			f = family(out, "mc_player_jump")
			So(f.Labels, ShouldResemble, []string{"player"})
			So(f.Samples, ShouldResemble, []projection.Sample{{Labels: []string{"A"}, Value: 7}})

			So(family(out, "mc_player_crafted").Samples, ShouldBeEmpty)
		})

		Convey("Then vitals are reported only for players with data", func() {
			So(family(out, projection.FamilyHealth).Samples, ShouldResemble, []projection.Sample{{Labels: []string{"A"}, Value: 18}})
			xp := family(out, projection.FamilyXp)
			So(xp.Type, ShouldEqual, projection.Counter)
			So(xp.Samples[0].Value, ShouldEqual, 42)
		})

		Convey("Then every player has a uuid entry", func() {
			f := family(out, projection.FamilyPlayerUUID)
			So(f.Samples, ShouldResemble, []projection.Sample{
				{Labels: []string{playerA.ID, "A"}, Value: 1},
				{Labels: []string{playerB.ID, "B"}, Value: 1},
			})
		})

		Convey("Then absent world info yields no entry", func() {
			So(family(out, projection.FamilyWorldInfos).Samples, ShouldBeEmpty)
		})
	})
}

func TestProjectServerState(t *testing.T) {
	Convey("Given world info and Forge state", t, func() {
		world := model.WorldInfo{Version: "1.16.5", Difficulty: 2, GameMode: 0, Hardcore: false}
		out := projection.Project(projection.Input{
			World: &world,
			Live: model.LiveState{
				Entities: []model.EntityCount{
					{Mod: "minecraft", Entity: "zombie", Count: 41},
					{Mod: "minecraft", Entity: "zombie", Count: 3},
				},
				Mods: []model.ModVersion{{Mod: "create", Version: "0.3.2g"}},
			},
		})

		Convey("Then the world gauge carries its labels", func() {
			f := family(out, projection.FamilyWorldInfos)
			So(f.Samples, ShouldResemble, []projection.Sample{{Labels: []string{"1.16.5", "2", "0", "0"}, Value: 1}})
		})

		Convey("Then repeated entity lines keep the first", func() {
			f := family(out, projection.FamilyEntitiesLoaded)
			So(f.Samples, ShouldResemble, []projection.Sample{{Labels: []string{"minecraft", "zombie"}, Value: 41}})
		})

		Convey("Then mods report 1 with their version", func() {
			f := family(out, projection.FamilyModsInstalled)
			So(f.Samples, ShouldResemble, []projection.Sample{{Labels: []string{"create", "0.3.2g"}, Value: 1}})
		})

		Convey("Then type names match the exposition format", func() {
			So(projection.Counter.String(), ShouldEqual, "counter")
			So(projection.Gauge.String(), ShouldEqual, "gauge")
		})
	})
}

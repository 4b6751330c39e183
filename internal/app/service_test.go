package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	service "github.com/okian/mcstats/internal/app"
	"github.com/okian/mcstats/internal/domain/model"
	"github.com/okian/mcstats/internal/domain/projection"
	"github.com/okian/mcstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

type fakeRoster []model.Player

func (r fakeRoster) List(context.Context) []model.Player { return r }

type fakeFiles struct {
	mu    sync.Mutex
	world *model.WorldInfo
	stats map[string]map[string]any
	data  map[string]model.PlayerData
	reads int
	delay time.Duration
}

func (f *fakeFiles) WorldInfo(context.Context) (model.WorldInfo, bool) {
	if f.world == nil {
		return model.WorldInfo{}, false
	}
	return *f.world, true
}

func (f *fakeFiles) PlayerData(_ context.Context, id string) (model.PlayerData, bool) {
	d, ok := f.data[id]
	return d, ok
}

func (f *fakeFiles) Stats(ctx context.Context, id string) (map[string]any, bool) {
	f.mu.Lock()
	f.reads++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, false
		}
	}
	raw, ok := f.stats[id]
	return raw, ok
}

type fakeLive struct {
	state model.LiveState
	meta  *model.WorldInfo
}

func (l fakeLive) State(context.Context) model.LiveState { return l.state }

func (l fakeLive) WorldMeta(context.Context) (model.WorldInfo, bool) {
	if l.meta == nil {
		return model.WorldInfo{}, false
	}
	return *l.meta, true
}

func find(families []projection.Family, name string) projection.Family {
	for _, f := range families {
		if f.Name == name {
			return f
		}
	}
	return projection.Family{}
}

var (
	alice = model.Player{ID: "069a79f4-44e9-4726-a5be-fca90e38aaf5", Name: "Alice"}
	bob   = model.Player{ID: "853c80ef-3c37-49fd-aa49-938b674adae6", Name: "Bob"}
)

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New(fakeRoster{}, &fakeFiles{})

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldBeGreaterThan, 0)
			So(stats["liveEnabled"], ShouldEqual, false)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(fakeRoster{}, &fakeFiles{},
			service.WithWorkerCount(8),
			service.WithLive(fakeLive{}),
			service.WithLogger(logger.Nop()),
		)

		Convey("Then the options are applied", func() {
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldEqual, 8)
			So(stats["liveEnabled"], ShouldEqual, true)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(fakeRoster{}, &fakeFiles{})
		ctx := context.Background()

		Convey("When starting it twice", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it is marked as started", func() {
				So(svc.GetStats()["started"], ShouldEqual, true)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Collect(t *testing.T) {
	Convey("Given two players and a live source", t, func() {
		ctx := context.Background()
		files := &fakeFiles{
			stats: map[string]map[string]any{
				alice.ID: {"stats": map[string]any{"minecraft:custom": map[string]any{
					"minecraft:jump":   3,
					"minecraft:bogus":  1,
					"minecraft:deaths": 2,
				}}},
				bob.ID: {"stat.jump": 5},
			},
			data: map[string]model.PlayerData{alice.ID: {Health: 20}},
		}
		live := fakeLive{
			state: model.LiveState{Online: []string{"Alice"}},
			meta:  &model.WorldInfo{Difficulty: 3, DifficultyOnly: true},
		}
		svc := service.New(fakeRoster{alice, bob}, files, service.WithLive(live), service.WithWorkerCount(2))

		Convey("When a cycle runs", func() {
			families := svc.Collect(ctx)

			Convey("Then both schemas are projected per player", func() {
				jump := find(families, "mc_player_jump")
				So(jump.Samples, ShouldResemble, []projection.Sample{
					{Labels: []string{"Alice"}, Value: 3},
					{Labels: []string{"Bob"}, Value: 5},
				})
			})

			Convey("Then the online roster comes from the live source", func() {
				online := find(families, projection.FamilyPlayersOnline)
				So(online.Samples, ShouldResemble, []projection.Sample{
					{Labels: []string{"Alice"}, Value: 1},
					{Labels: []string{"Bob"}, Value: 0},
				})
			})

			Convey("Then world info falls back to the console without inventing fields", func() {
				world := find(families, projection.FamilyWorldInfos)
				So(world.Samples, ShouldHaveLength, 1)
				So(world.Samples[0].Labels, ShouldResemble, []string{"", "3", "", ""})
			})

			Convey("Then vitals are reported where present", func() {
				So(find(families, projection.FamilyHealth).Samples, ShouldHaveLength, 1)
			})

			Convey("Then the cycle is recorded in the stats", func() {
				stats := svc.GetStats()
				So(stats["collections"], ShouldEqual, uint64(1))
				So(stats["players"], ShouldEqual, 2)
				So(stats["unclassified"], ShouldEqual, 1)
				So(stats["lastCollectedAt"], ShouldNotBeEmpty)
			})
		})

		Convey("When level.dat is readable", func() {
			files.world = &model.WorldInfo{Version: "1.20.4", Difficulty: 1}
			families := svc.Collect(ctx)

			Convey("Then it takes precedence over the console", func() {
				world := find(families, projection.FamilyWorldInfos)
				So(world.Samples[0].Labels[0], ShouldEqual, "1.20.4")
			})
		})

		Convey("When no live source is configured", func() {
			offline := service.New(fakeRoster{alice, bob}, files)
			families := offline.Collect(ctx)

			Convey("Then the online family has no entries", func() {
				So(find(families, projection.FamilyPlayersOnline).Samples, ShouldBeEmpty)
				So(find(families, projection.FamilyPlayerUUID).Samples, ShouldHaveLength, 2)
			})
		})

		Convey("When the cycle is cancelled", func() {
			files.delay = time.Second
			cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
			defer cancel()
			start := time.Now()
			families := svc.Collect(cctx)

			Convey("Then it returns promptly with the finished players only", func() {
				So(time.Since(start), ShouldBeLessThan, 500*time.Millisecond)
				So(find(families, "mc_player_jump").Samples, ShouldBeEmpty)
				So(find(families, projection.FamilyPlayerUUID).Samples, ShouldHaveLength, 2)
			})
		})
	})
}

func TestService_CollectIdempotent(t *testing.T) {
	Convey("Given unchanged inputs", t, func() {
		files := &fakeFiles{stats: map[string]map[string]any{
			alice.ID: {"stat.mineBlock.minecraft.stone": 4, "stat.walkOneCm": 10, "stat.jump": 1},
		}}
		svc := service.New(fakeRoster{alice}, files)

		Convey("Then two cycles produce identical families", func() {
			So(svc.Collect(context.Background()), ShouldResemble, svc.Collect(context.Background()))
		})
	})
}

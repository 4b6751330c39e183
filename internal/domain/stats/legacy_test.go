package stats

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestCamelToSnake(t *testing.T) {
	convey.Convey("camelToSnake", t, func() {
		cases := map[string]string{
			"craftingTableInteraction": "crafting_table_interaction",
			"walkOneCm":                "walk_one_cm",
			"jump":                     "jump",
			"already_snake":            "already_snake",
			"timeSinceDeath":           "time_since_death",
			"aviate1Cm":                "aviate1_cm",
			"":                         "",
		}
		for in, want := range cases {
			convey.So(camelToSnake(in), convey.ShouldEqual, want)
		}
	})
}

func TestSplitLegacy(t *testing.T) {
	convey.Convey("splitLegacy", t, func() {
		verb, ns, item := splitLegacy(nil)
		convey.So([]string{verb, ns, item}, convey.ShouldResemble, []string{"", "", ""})

		verb, ns, item = splitLegacy([]string{"jump"})
		convey.So([]string{verb, ns, item}, convey.ShouldResemble, []string{"jump", "", ""})

		verb, ns, item = splitLegacy([]string{"killEntity", "Zombie"})
		convey.So([]string{verb, ns, item}, convey.ShouldResemble, []string{"killEntity", "minecraft", "Zombie"})

		verb, ns, item = splitLegacy([]string{"mineBlock", "tconstruct", "ore", "cobalt"})
		convey.So([]string{verb, ns, item}, convey.ShouldResemble, []string{"mineBlock", "tconstruct", "ore.cobalt"})
	})
}

func TestClassifyCustomPrecedence(t *testing.T) {
	convey.Convey("Given names that several rules could claim", t, func() {
		convey.Convey("The _one_cm suffix wins over prefixes", func() {
			m, ok := classifyCustom("clean_one_cm")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(m.bucket, convey.ShouldEqual, Distance)
			convey.So(m.qualifier, convey.ShouldEqual, "clean")
		})

		convey.Convey("Exact tick aliases are measured in ticks", func() {
			m, ok := classifyCustom("total_world_time")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(m.ticks, convey.ShouldBeTrue)
			convey.So(m.qualifier, convey.ShouldEqual, "world")
		})

		convey.Convey("Category names are not scalars", func() {
			_, ok := classifyCustom("mined")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("The drop total is known but skipped", func() {
			m, ok := classifyCustom("drop")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(m.skip, convey.ShouldBeTrue)
		})
	})
}

func TestBucketCatalog(t *testing.T) {
	convey.Convey("Every bucket round-trips through its name", t, func() {
		for _, b := range All() {
			parsed, ok := ParseBucket(b.String())
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(parsed, convey.ShouldEqual, b)
			convey.So(b.Kind(), convey.ShouldNotEqual, Kind(0))
		}
		convey.So(BucketInvalid.Valid(), convey.ShouldBeFalse)
		convey.So(Bucket(200).String(), convey.ShouldEqual, "invalid")
		convey.So(len(All()), convey.ShouldEqual, int(bucketCount)-1)
	})
}

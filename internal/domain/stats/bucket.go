// Package stats classifies raw per-player statistics files into canonical
// buckets. Two file schemas exist: the legacy flat dotted-key form
// ("stat.mineBlock.minecraft.stone") and the namespaced nested form
// ({"stats": {"minecraft:mined": {"minecraft:stone": 3}}}). Both are walked by
// ordered rule tables into the same closed set of buckets.
package stats

// Bucket is a canonical statistic family. The zero value is invalid.
type Bucket uint8

// Kind describes which qualifiers a bucket's records carry.
type Kind uint8

const (
	// KindCategory records carry (namespace, item).
	KindCategory Kind = iota + 1
	// KindQualified records carry one qualifier (distance type, target, ...).
	KindQualified
	// KindScalar records carry no qualifier.
	KindScalar
)

// Buckets, in catalog order.
const (
	BucketInvalid Bucket = iota

	// Category buckets come from the non-custom modern categories and the
	// legacy item/entity verbs.
	Mined
	Broken
	Crafted
	Used
	PickedUp
	Dropped
	Killed
	KilledBy

	// Qualified custom buckets.
	Interact
	Distance
	Time
	Clean

	// Scalar custom buckets.
	AnimalsBred
	DamageAbsorbed
	DamageBlockedByShield
	DamageDealt
	DamageDealtAbsorbed
	DamageDealtResisted
	DamageResisted
	DamageTaken
	Deaths
	EatCakeSlice
	EnchantItem
	FishCaught
	Jump
	JunkFished
	LeaveGame
	MobKills
	PlayRecord
	PlayerKills
	PotFlower
	RaidTrigger
	RaidWin
	SleepInBed
	TalkedToVillager
	TargetHit
	TradedWithVillager
	TreasureFished
	TuneNoteblock
	UseCauldron

	bucketCount
)

var bucketNames = [bucketCount]string{
	BucketInvalid:         "invalid",
	Mined:                 "mined",
	Broken:                "broken",
	Crafted:               "crafted",
	Used:                  "used",
	PickedUp:              "picked_up",
	Dropped:               "dropped",
	Killed:                "killed",
	KilledBy:              "killed_by",
	Interact:              "interact",
	Distance:              "distance",
	Time:                  "time",
	Clean:                 "clean",
	AnimalsBred:           "animals_bred",
	DamageAbsorbed:        "damage_absorbed",
	DamageBlockedByShield: "damage_blocked_by_shield",
	DamageDealt:           "damage_dealt",
	DamageDealtAbsorbed:   "damage_dealt_absorbed",
	DamageDealtResisted:   "damage_dealt_resisted",
	DamageResisted:        "damage_resisted",
	DamageTaken:           "damage_taken",
	Deaths:                "deaths",
	EatCakeSlice:          "eat_cake_slice",
	EnchantItem:           "enchant_item",
	FishCaught:            "fish_caught",
	Jump:                  "jump",
	JunkFished:            "junk_fished",
	LeaveGame:             "leave_game",
	MobKills:              "mob_kills",
	PlayRecord:            "play_record",
	PlayerKills:           "player_kills",
	PotFlower:             "pot_flower",
	RaidTrigger:           "raid_trigger",
	RaidWin:               "raid_win",
	SleepInBed:            "sleep_in_bed",
	TalkedToVillager:      "talked_to_villager",
	TargetHit:             "target_hit",
	TradedWithVillager:    "traded_with_villager",
	TreasureFished:        "treasure_fished",
	TuneNoteblock:         "tune_noteblock",
	UseCauldron:           "use_cauldron",
}

var bucketsByName = func() map[string]Bucket {
	m := make(map[string]Bucket, bucketCount)
	for b := Mined; b < bucketCount; b++ {
		m[bucketNames[b]] = b
	}
	return m
}()

// String returns the bucket's snake-case name.
func (b Bucket) String() string {
	if b >= bucketCount {
		return "invalid"
	}
	return bucketNames[b]
}

// Valid reports whether b is a member of the catalog.
func (b Bucket) Valid() bool {
	return b > BucketInvalid && b < bucketCount
}

// Kind returns the qualifier shape of the bucket.
func (b Bucket) Kind() Kind {
	switch {
	case b >= Mined && b <= KilledBy:
		return KindCategory
	case b >= Interact && b <= Clean:
		return KindQualified
	case b.Valid():
		return KindScalar
	}
	return 0
}

// ParseBucket looks a bucket up by its snake-case name.
func ParseBucket(name string) (Bucket, bool) {
	b, ok := bucketsByName[name]
	return b, ok
}

// All returns every valid bucket in catalog order.
func All() []Bucket {
	out := make([]Bucket, 0, bucketCount-1)
	for b := Mined; b < bucketCount; b++ {
		out = append(out, b)
	}
	return out
}

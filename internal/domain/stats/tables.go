package stats

const (
	// baseNamespace is assumed when a key carries no namespace.
	baseNamespace = "minecraft"

	// ticksPerSecond converts game ticks to seconds.
	ticksPerSecond = 20

	customCategory = "custom"
)

// categoryBuckets maps modern category names to buckets.
var categoryBuckets = map[string]Bucket{
	"mined":     Mined,
	"broken":    Broken,
	"crafted":   Crafted,
	"used":      Used,
	"picked_up": PickedUp,
	"dropped":   Dropped,
	"killed":    Killed,
	"killed_by": KilledBy,
}

// interactAliases maps custom statistics that name an action on a block to
// the block they interact with.
var interactAliases = map[string]string{
	"open_barrel":           "barrel",
	"bell_ring":             "bell",
	"open_chest":            "chest",
	"open_enderchest":       "ender_chest",
	"open_shulker_box":      "shulker_box",
	"trigger_trapped_chest": "trapped_chest",
	"inspect_dispenser":     "dispenser",
	"inspect_dropper":       "dropper",
	"inspect_hopper":        "hopper",
	"play_noteblock":        "noteblock",
	"fill_cauldron":         "cauldron",
}

// ticksAliases are exact custom names measured in ticks that land in the
// time bucket under a fixed qualifier.
var ticksAliases = map[string]string{
	"play_one_minute":  "played",
	"play_time":        "played",
	"total_world_time": "world",
	"sneak_time":       "sneak",
}

// ignoredCustom are custom totals that duplicate per-item categories.
var ignoredCustom = map[string]struct{}{
	"drop": {},
}

// legacyVerbs renames snake-cased legacy verbs to the modern vocabulary.
// Targets are either category names or modern custom statistic names.
var legacyVerbs = map[string]string{
	"mine_block":       "mined",
	"craft_item":       "crafted",
	"use_item":         "used",
	"break_item":       "broken",
	"pickup":           "picked_up",
	"drop":             "dropped",
	"kill_entity":      "killed",
	"entity_killed_by": "killed_by",

	"item_enchanted": "enchant_item",
	"record_played":  "play_record",
	"flower_potted":  "pot_flower",

	"cake_slices_eaten":          "eat_cake_slice",
	"chest_opened":               "open_chest",
	"enderchest_opened":          "open_enderchest",
	"shulker_box_opened":         "open_shulker_box",
	"trapped_chest_triggered":    "trigger_trapped_chest",
	"dispenser_inspected":        "inspect_dispenser",
	"dropper_inspected":          "inspect_dropper",
	"hopper_inspected":           "inspect_hopper",
	"noteblock_played":           "play_noteblock",
	"noteblock_tuned":            "tune_noteblock",
	"cauldron_filled":            "fill_cauldron",
	"cauldron_used":              "use_cauldron",
	"furnace_interaction":        "interact_with_furnace",
	"crafting_table_interaction": "interact_with_crafting_table",
	"brewingstand_interaction":   "interact_with_brewingstand",
	"beacon_interaction":         "interact_with_beacon",
	"armor_cleaned":              "clean_armor",
	"banner_cleaned":             "clean_banner",
}

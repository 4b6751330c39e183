package rcon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/mcstats/internal/domain/model"
)

var (
	formattingCode = regexp.MustCompile(`§.`)
	entityLine     = regexp.MustCompile(`(\d+): (\w+):(\w+)`)
	modLine        = regexp.MustCompile(`.*: (\w+) \((.+)\)`)
	difficultyLine = regexp.MustCompile(`The difficulty is (\w+)`)
)

// difficulties maps the reported difficulty to the level.dat code.
var difficulties = map[string]int{
	"peaceful": 0,
	"easy":     1,
	"normal":   2,
	"hard":     3,
}

// stripFormatting removes colour and style codes.
func stripFormatting(reply string) string {
	return formattingCode.ReplaceAllString(reply, "")
}

// parseList reads "There are N of a max of M players online: a, b".
func parseList(reply string) ([]string, error) {
	_, names, found := strings.Cut(stripFormatting(reply), ":")
	if !found {
		return nil, fmt.Errorf("%w: list: %q", ErrUnexpectedReply, reply)
	}
	online := []string{}
	for _, name := range strings.Split(names, ",") {
		if name = strings.TrimSpace(name); name != "" {
			online = append(online, name)
		}
	}
	return online, nil
}

// parseEntities reads "count: mod:entity" lines.
func parseEntities(reply string) []model.EntityCount {
	matches := entityLine.FindAllStringSubmatch(stripFormatting(reply), -1)
	out := make([]model.EntityCount, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out = append(out, model.EntityCount{Mod: m[2], Entity: m[3], Count: n})
	}
	return out
}

// parseMods reads "...: modid (version)" lines.
func parseMods(reply string) []model.ModVersion {
	matches := modLine.FindAllStringSubmatch(stripFormatting(reply), -1)
	out := make([]model.ModVersion, 0, len(matches))
	for _, m := range matches {
		out = append(out, model.ModVersion{Mod: m[1], Version: m[2]})
	}
	return out
}

// parseDifficulty reads "The difficulty is Normal".
func parseDifficulty(reply string) (int, error) {
	m := difficultyLine.FindStringSubmatch(stripFormatting(reply))
	if m == nil {
		return 0, fmt.Errorf("%w: difficulty: %q", ErrUnexpectedReply, reply)
	}
	code, ok := difficulties[strings.ToLower(m[1])]
	if !ok {
		return 0, fmt.Errorf("%w: difficulty %q", ErrUnexpectedReply, m[1])
	}
	return code, nil
}

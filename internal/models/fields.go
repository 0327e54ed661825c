package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GenreIDs is the list of genre ids attached to a podcast. Decoding is
// tolerant: anything that is not a list decodes to an empty list and list
// items that are not integers are skipped.
type GenreIDs []int

// Contains reports whether id is in the list
func (g GenreIDs) Contains(id int) bool {
	for _, v := range g {
		if v == id {
			return true
		}
	}
	return false
}

func (g *GenreIDs) UnmarshalYAML(value *yaml.Node) error {
	ids := GenreIDs{}
	if value.Kind == yaml.SequenceNode {
		for _, item := range value.Content {
			var id int
			if err := item.Decode(&id); err != nil {
				continue
			}
			ids = append(ids, id)
		}
	}
	*g = ids
	return nil
}

func (g *GenreIDs) UnmarshalJSON(data []byte) error {
	ids := GenreIDs{}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		for _, item := range items {
			var id int
			if err := json.Unmarshal(item, &id); err != nil {
				continue
			}
			ids = append(ids, id)
		}
	}
	*g = ids
	return nil
}

func (g GenreIDs) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(g))
}

// SeasonCount is the number of seasons of a podcast. The dataset may hold a
// number, numeric text or the season list itself; anything else counts as
// zero.
type SeasonCount int

func (s *SeasonCount) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		*s = SeasonCount(len(value.Content))
	case yaml.ScalarNode:
		*s = parseSeasonCount(value.Value)
	default:
		*s = 0
	}
	return nil
}

func (s *SeasonCount) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil && items != nil {
		*s = SeasonCount(len(items))
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = parseSeasonCount(text)
		return nil
	}

	*s = parseSeasonCount(string(data))
	return nil
}

func parseSeasonCount(text string) SeasonCount {
	text = strings.TrimSpace(text)
	if n, err := strconv.Atoi(text); err == nil {
		return clampSeasons(n)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return clampSeasons(int(f))
	}
	return 0
}

func clampSeasons(n int) SeasonCount {
	if n < 0 {
		return 0
	}
	return SeasonCount(n)
}

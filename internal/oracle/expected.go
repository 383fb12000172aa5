package oracle

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Numbers keep their JSON text so that 12 and 12.0 are rendered as written.
type Platforms struct {
	Windows json.Number `json:"windows"`
	Mac     json.Number `json:"mac"`
	Linux   json.Number `json:"linux"`
}

type PlaytimeEntry struct {
	Name     string      `json:"Name"`
	Playtime json.Number `json:"Average playtime forever"`
}

type ScoreEntry struct {
	Name          string      `json:"Name"`
	PositiveScore json.Number `json:"positive_score"`
}

type NameEntry struct {
	Name string `json:"Name"`
}

type CountEntry struct {
	Name  string      `json:"Name"`
	Count json.Number `json:"count"`
}

// Expected is the reference answer of the five queries. A nil member means the
// query is not checked.
type Expected struct {
	Q1 *Platforms      `json:"q1"`
	Q2 []PlaytimeEntry `json:"q2"`
	Q3 []ScoreEntry    `json:"q3"`
	Q4 []NameEntry     `json:"q4"`
	Q5 []CountEntry    `json:"q5"`
}

var jsonAPI = jsoniter.Config{UseNumber: true}.Froze()

func ParseExpected(data []byte) (Expected, error) {
	var e Expected
	if err := jsonAPI.Unmarshal(data, &e); err != nil {
		return Expected{}, fmt.Errorf("cannot parse expected results: %w", err)
	}
	return e, nil
}

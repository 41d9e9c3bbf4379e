package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoPlayers is returned when a players payload has no response.players field
var ErrNoPlayers = errors.New("response.players missing from payload")

type playersPayload struct {
	Response *struct {
		Players []map[string]any `json:"players"`
	} `json:"response"`
}

// ParsePlayersResponse decodes an understat getPlayersStats payload.
// Every value is returned in its textual form.
func ParsePlayersResponse(body []byte) ([]map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload playersPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding players payload: %w", err)
	}
	if payload.Response == nil || payload.Response.Players == nil {
		return nil, ErrNoPlayers
	}

	players := make([]map[string]string, 0, len(payload.Response.Players))
	for _, p := range payload.Response.Players {
		row := make(map[string]string, len(p))
		for k, v := range p {
			row[k] = stringify(v)
		}
		players = append(players, row)
	}
	return players, nil
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

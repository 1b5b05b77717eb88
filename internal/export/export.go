// Package export writes game and tournament results in the JSON layout
// external tooling reads.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/boyter/titfortat/internal/game"
)

// TimestampLayout matches JavaScript's Date.toISOString: UTC with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Kind is the type of run a document holds.
type Kind string

const (
	KindGame       Kind = "game"
	KindTournament Kind = "tournament"
)

// Document is one exported run. Results is a game.GameResult for games
// and a []game.TournamentResult for tournaments.
type Document struct {
	Scenario  string         `json:"scenario"`
	Timestamp string         `json:"timestamp"`
	Type      Kind           `json:"type"`
	Results   any            `json:"results"`
	Standings game.Standings `json:"standings,omitempty"`
}

// Game builds a document for a single game.
func Game(scenario string, at time.Time, result game.GameResult) Document {
	return Document{
		Scenario:  scenario,
		Timestamp: at.UTC().Format(TimestampLayout),
		Type:      KindGame,
		Results:   result,
	}
}

// Tournament builds a document for a round robin and its standings.
func Tournament(scenario string, at time.Time, results []game.TournamentResult) Document {
	return Document{
		Scenario:  scenario,
		Timestamp: at.UTC().Format(TimestampLayout),
		Type:      KindTournament,
		Results:   results,
		Standings: game.CalculateStandings(results),
	}
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// rawDocument defers decoding results until the type is known.
type rawDocument struct {
	Scenario  string          `json:"scenario"`
	Timestamp string          `json:"timestamp"`
	Type      Kind            `json:"type"`
	Results   json.RawMessage `json:"results"`
	Standings game.Standings  `json:"standings"`
}

// Read decodes a document written by Write, restoring typed results.
func Read(r io.Reader) (Document, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("decode export: %w", err)
	}

	doc := Document{
		Scenario:  raw.Scenario,
		Timestamp: raw.Timestamp,
		Type:      raw.Type,
		Standings: raw.Standings,
	}
	switch raw.Type {
	case KindGame:
		var result game.GameResult
		if err := json.Unmarshal(raw.Results, &result); err != nil {
			return Document{}, fmt.Errorf("decode game results: %w", err)
		}
		doc.Results = result
	case KindTournament:
		var results []game.TournamentResult
		if err := json.Unmarshal(raw.Results, &results); err != nil {
			return Document{}, fmt.Errorf("decode tournament results: %w", err)
		}
		doc.Results = results
	default:
		return Document{}, fmt.Errorf("unknown export type %q", raw.Type)
	}
	return doc, nil
}

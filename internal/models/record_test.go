package models

import (
	"encoding/json"
	"testing"
)

func TestRecord_Accessors(t *testing.T) {
	var rec Record
	raw := `{
		"id": 1399,
		"name": "Game of Thrones",
		"vote_average": 8.4,
		"nothing": null,
		"external_ids": {"imdb_id": "tt0944947"},
		"genres": [{"name": "Drama"}, "not a mapping", {"name": "Fantasy"}],
		"origin_country": ["US", "GB"]
	}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("Failed to decode fixture: %v", err)
	}

	if got := rec.Str("name"); got != "Game of Thrones" {
		t.Errorf("Str: got %q", got)
	}
	if got := rec.Str("missing"); got != "" {
		t.Errorf("Str on missing key: got %q", got)
	}
	if got := rec.StrOr("missing", "fallback"); got != "fallback" {
		t.Errorf("StrOr: got %q", got)
	}
	if got := rec.Int("id"); got != 1399 {
		t.Errorf("Int: got %d", got)
	}
	if got := rec.Float("vote_average"); got != 8.4 {
		t.Errorf("Float: got %f", got)
	}
	if rec.Has("nothing") {
		t.Error("Has must be false for null values")
	}
	if !rec.Has("id") {
		t.Error("Has must be true for present values")
	}

	if got := rec.Map("external_ids").Str("imdb_id"); got != "tt0944947" {
		t.Errorf("Map: got %q", got)
	}
	if got := rec.Map("missing").Str("anything"); got != "" {
		t.Errorf("Map on missing key must yield empty record, got %q", got)
	}

	genres := rec.Slice("genres")
	if len(genres) != 2 || genres[0].Str("name") != "Drama" || genres[1].Str("name") != "Fantasy" {
		t.Errorf("Slice must skip non-mappings, got %v", genres)
	}

	countries := rec.Strings("origin_country")
	if len(countries) != 2 || countries[0] != "US" {
		t.Errorf("Strings: got %v", countries)
	}
}

func TestRecord_NumbersAsStrings(t *testing.T) {
	rec := Record{"tvdb_id": float64(121361)}
	if got := rec.Str("tvdb_id"); got != "121361" {
		t.Errorf("Expected numeric ID rendered as string, got %q", got)
	}
}

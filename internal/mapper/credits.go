package mapper

import (
	"strings"

	"github.com/forbxy/tvmeta/internal/models"
	"github.com/forbxy/tvmeta/internal/sink"
)

// showCredits collects show creators followed by writing crew, deduplicated
// by name in first-seen order.
func showCredits(info models.Record) []string {
	var credits []string
	seen := make(map[string]bool)
	for _, item := range info.Slice("created_by") {
		name := item.Str("name")
		if name != "" && !seen[name] {
			credits = append(credits, name)
			seen[name] = true
		}
	}
	for _, item := range info.Map("credits").Slice("crew") {
		isWriter := strings.EqualFold(item.Str("job"), "writer") ||
			strings.EqualFold(item.Str("department"), "writing")
		name := item.Str("name")
		if isWriter && name != "" && !seen[name] {
			credits = append(credits, name)
			seen[name] = true
		}
	}
	return credits
}

// episodeDirectors collects crew members credited with the Director job.
func episodeDirectors(info models.Record) []string {
	var directors []string
	for _, item := range info.Map("credits").Slice("crew") {
		if item.Str("job") == "Director" {
			directors = append(directors, item.Str("name"))
		}
	}
	return directors
}

// setCast publishes cast credits in listing order. The character key
// differs between show credits ("character") and season credits
// ("character_name").
func (m *Mapper) setCast(castInfo []models.Record, s sink.VideoSink) {
	cast := make([]sink.Actor, 0, len(castInfo))
	for _, item := range castInfo {
		actor := sink.Actor{
			Name:  item.Str("name"),
			Role:  item.StrOr("character", item.Str("character_name")),
			Order: item.Int("order"),
		}
		if item.Has("profile_path") {
			actor.Thumb = m.cfg.Image.BaseURL + item.Str("profile_path")
		}
		cast = append(cast, actor)
	}
	s.SetCast(cast)
}

// names extracts the "name" field from a list of records.
func names(items []models.Record) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Str("name"))
	}
	return out
}

package mapper

import (
	"regexp"
	"strings"
)

// plotReplacer converts the HTML markup TMDB allows in overviews into the
// inline formatting tags media-center skins understand. Paragraph breaks
// become [CR]; replacements run before the residual tag strip so the
// converted pairs survive it.
var plotReplacer = strings.NewReplacer(
	"<b>", "[B]",
	"</b>", "[/B]",
	"<i>", "[I]",
	"</i>", "[/I]",
	"</p><p>", "[CR]",
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// CleanPlot rewrites supported HTML markup as skin formatting tags and
// strips whatever markup remains.
func CleanPlot(plot string) string {
	return tagRe.ReplaceAllString(plotReplacer.Replace(plot), "")
}

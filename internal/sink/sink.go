// Package sink defines the write-side contract between the metadata mapper
// and the consuming media library. The mapper only ever calls setters; it
// never reads previously written values back.
package sink

// Actor is a single cast credit in listing order.
type Actor struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Order int    `json:"order"`
	Thumb string `json:"thumb,omitempty"`
}

// Artwork is one available artwork candidate offered to the library.
type Artwork struct {
	URL     string `json:"url"`
	Type    string `json:"type"`
	Preview string `json:"preview,omitempty"`
	Season  int    `json:"season,omitempty"`
}

// Fanart is one fanart candidate with an optional scaled-down preview.
type Fanart struct {
	Image   string `json:"image"`
	Preview string `json:"preview,omitempty"`
}

// RatingValue is a vote-backed score from one rating source.
type RatingValue struct {
	Rating  float64 `json:"rating"`
	Votes   int     `json:"votes"`
	Default bool    `json:"default,omitempty"`
}

// UniqueID is an external identifier registered with the library.
type UniqueID struct {
	Value   string `json:"value"`
	Default bool   `json:"default,omitempty"`
}

// Season is a season entry with its display name.
type Season struct {
	Number int    `json:"number"`
	Name   string `json:"name,omitempty"`
}

// VideoSink receives the mapped metadata for one show or episode. The
// order of setter calls is unspecified except that defaults (unique IDs,
// ratings) are marked on the call itself, never by position.
type VideoSink interface {
	SetTitle(title string)
	SetOriginalTitle(title string)
	SetTvShowTitle(title string)
	SetSortTitle(title string)
	SetPlot(plot string)
	SetPlotOutline(outline string)
	SetMediaType(mediaType string)
	SetYear(year int)
	SetPremiered(date string)
	SetFirstAired(date string)
	SetSeason(season int)
	SetEpisode(episode int)
	SetEpisodeGuide(guide string)
	SetUniqueID(value string, kind string, isDefault bool)
	SetRating(rating float64, votes int, kind string, isDefault bool)
	AddAvailableArtwork(art Artwork)
	SetAvailableFanart(fanart []Fanart)
	SetCast(cast []Actor)
	SetGenres(genres []string)
	SetTags(tags []string)
	SetStudios(studios []string)
	SetCountries(countries []string)
	SetTvShowStatus(status string)
	SetMpaa(mpaa string)
	SetWriters(writers []string)
	SetDirectors(directors []string)
	AddVideoStream(durationSeconds int)
	SetTrailer(trailer string)
	AddSeason(number int, name string)
}

// Item is an in-memory VideoSink. It accumulates everything the mapper
// writes and serializes cleanly to JSON, which makes it both the HTTP API
// response shape and the assertion target in tests.
type Item struct {
	Title          string                 `json:"title,omitempty"`
	OriginalTitle  string                 `json:"original_title,omitempty"`
	TvShowTitle    string                 `json:"tvshow_title,omitempty"`
	SortTitle      string                 `json:"sort_title,omitempty"`
	Plot           string                 `json:"plot,omitempty"`
	PlotOutline    string                 `json:"plot_outline,omitempty"`
	MediaType      string                 `json:"media_type,omitempty"`
	Year           int                    `json:"year,omitempty"`
	Premiered      string                 `json:"premiered,omitempty"`
	FirstAired     string                 `json:"first_aired,omitempty"`
	Season         int                    `json:"season,omitempty"`
	Episode        int                    `json:"episode,omitempty"`
	EpisodeGuide   string                 `json:"episode_guide,omitempty"`
	UniqueIDs      map[string]UniqueID    `json:"unique_ids,omitempty"`
	Ratings        map[string]RatingValue `json:"ratings,omitempty"`
	Artwork        []Artwork              `json:"artwork,omitempty"`
	Fanart         []Fanart               `json:"fanart,omitempty"`
	Cast           []Actor                `json:"cast,omitempty"`
	Genres         []string               `json:"genres,omitempty"`
	Tags           []string               `json:"tags,omitempty"`
	Studios        []string               `json:"studios,omitempty"`
	Countries      []string               `json:"countries,omitempty"`
	Status         string                 `json:"status,omitempty"`
	Mpaa           string                 `json:"mpaa,omitempty"`
	Writers        []string               `json:"writers,omitempty"`
	Directors      []string               `json:"directors,omitempty"`
	VideoStreams   []int                  `json:"video_streams,omitempty"`
	Trailer        string                 `json:"trailer,omitempty"`
	Seasons        []Season               `json:"seasons,omitempty"`
}

// NewItem creates an empty accumulator.
func NewItem() *Item {
	return &Item{
		UniqueIDs: make(map[string]UniqueID),
		Ratings:   make(map[string]RatingValue),
	}
}

func (i *Item) SetTitle(title string)          { i.Title = title }
func (i *Item) SetOriginalTitle(title string)  { i.OriginalTitle = title }
func (i *Item) SetTvShowTitle(title string)    { i.TvShowTitle = title }
func (i *Item) SetSortTitle(title string)      { i.SortTitle = title }
func (i *Item) SetPlot(plot string)            { i.Plot = plot }
func (i *Item) SetPlotOutline(outline string)  { i.PlotOutline = outline }
func (i *Item) SetMediaType(mediaType string)  { i.MediaType = mediaType }
func (i *Item) SetYear(year int)               { i.Year = year }
func (i *Item) SetPremiered(date string)       { i.Premiered = date }
func (i *Item) SetFirstAired(date string)      { i.FirstAired = date }
func (i *Item) SetSeason(season int)           { i.Season = season }
func (i *Item) SetEpisode(episode int)         { i.Episode = episode }
func (i *Item) SetEpisodeGuide(guide string)   { i.EpisodeGuide = guide }
func (i *Item) SetTvShowStatus(status string)  { i.Status = status }
func (i *Item) SetMpaa(mpaa string)            { i.Mpaa = mpaa }
func (i *Item) SetTrailer(trailer string)      { i.Trailer = trailer }
func (i *Item) SetGenres(genres []string)      { i.Genres = genres }
func (i *Item) SetTags(tags []string)          { i.Tags = tags }
func (i *Item) SetStudios(studios []string)    { i.Studios = studios }
func (i *Item) SetCountries(cs []string)       { i.Countries = cs }
func (i *Item) SetWriters(writers []string)    { i.Writers = writers }
func (i *Item) SetDirectors(ds []string)       { i.Directors = ds }
func (i *Item) SetCast(cast []Actor)           { i.Cast = cast }
func (i *Item) SetAvailableFanart(fa []Fanart) { i.Fanart = fa }

func (i *Item) SetUniqueID(value string, kind string, isDefault bool) {
	if i.UniqueIDs == nil {
		i.UniqueIDs = make(map[string]UniqueID)
	}
	i.UniqueIDs[kind] = UniqueID{Value: value, Default: isDefault}
}

func (i *Item) SetRating(rating float64, votes int, kind string, isDefault bool) {
	if i.Ratings == nil {
		i.Ratings = make(map[string]RatingValue)
	}
	i.Ratings[kind] = RatingValue{Rating: rating, Votes: votes, Default: isDefault}
}

func (i *Item) AddAvailableArtwork(art Artwork) {
	i.Artwork = append(i.Artwork, art)
}

func (i *Item) AddVideoStream(durationSeconds int) {
	i.VideoStreams = append(i.VideoStreams, durationSeconds)
}

func (i *Item) AddSeason(number int, name string) {
	i.Seasons = append(i.Seasons, Season{Number: number, Name: name})
}

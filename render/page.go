// Package render turns a detail view into presentation models for the
// terminal and the HTTP API. It only reads already-derived data.
package render

import (
	"strconv"

	"github.com/s0up4200/cineparadis/detail"
	"github.com/s0up4200/cineparadis/images"
)

// Page is the presentation model of a detail page with the selected tab's
// content
type Page struct {
	Key      string          `json:"key"`
	State    string          `json:"state"`
	Error    *PageError      `json:"error,omitempty"`
	Tab      int             `json:"tab"`
	TabLabel string          `json:"tab_label"`
	Tabs     []string        `json:"tabs"`
	Meta     detail.PageMeta `json:"meta"`
	Banner   *Banner         `json:"banner,omitempty"`

	Cast            []CastCard           `json:"cast,omitempty"`
	Facts           *detail.Facts        `json:"facts,omitempty"`
	Gallery         *Gallery             `json:"gallery,omitempty"`
	Videos          []VideoCard          `json:"videos,omitempty"`
	Recommendations []RecommendationCard `json:"recommendations,omitempty"`
}

// PageError describes a failed fetch
type PageError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Banner is the header block of a loaded page
type Banner struct {
	Title       string  `json:"title"`
	Tagline     string  `json:"tagline,omitempty"`
	Overview    string  `json:"overview"`
	Date        string  `json:"date"`
	Runtime     int     `json:"runtime"`
	VoteAverage float64 `json:"vote_average"`
	Backdrop    string  `json:"backdrop"`
	Poster      string  `json:"poster"`
}

// CastCard is one entry of the cast grid
type CastCard struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Image     string `json:"image"`
}

// Gallery holds resolved artwork URLs
type Gallery struct {
	Backdrops []string `json:"backdrops"`
	Posters   []string `json:"posters"`
}

// VideoCard is one playable trailer or clip
type VideoCard struct {
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// RecommendationCard is one "More Like This" entry
type RecommendationCard struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	MediaType   string  `json:"media_type"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
	Image       string  `json:"image"`
	Link        string  `json:"link"`
}

// BuildPage assembles the presentation model. recs replaces the view's
// recommendation list when non-nil, which lets callers pass a filtered
// list without touching the stored views.
func BuildPage(v detail.View, recs detail.RecommendationList, img *images.Builder) Page {
	if img == nil {
		img = images.Default()
	}

	p := Page{
		State:    v.State.String(),
		Tab:      int(v.Tab),
		TabLabel: v.Tab.String(),
		Meta:     v.Meta,
	}
	if v.Key.Valid() {
		p.Key = v.Key.Slug()
	}
	for _, t := range detail.Tabs() {
		p.Tabs = append(p.Tabs, t.String())
	}

	if v.State == detail.StateFailed && v.Err != nil {
		p.Error = &PageError{Kind: v.ErrorKind.String(), Message: v.Err.Error()}
	}
	if !v.Loaded() || v.Content == nil || v.Views == nil {
		return p
	}

	c := v.Content
	date := c.ReleaseDate
	if date == "" {
		date = c.FirstAirDate
	}
	p.Banner = &Banner{
		Title:       c.DisplayName(),
		Tagline:     c.Tagline,
		Overview:    c.Overview,
		Date:        date,
		Runtime:     v.Views.Facts.Runtime,
		VoteAverage: c.VoteAverage,
		Backdrop:    img.URL(images.W500, c.BackdropPath, images.Landscape),
		Poster:      img.URL(images.W300, c.PosterPath, images.Poster),
	}

	if recs == nil {
		recs = v.Views.Recommendations
	}

	switch v.Tab {
	case detail.TabCast:
		p.Cast = castCards(v.Views.Cast, img)
	case detail.TabFacts:
		facts := v.Views.Facts
		p.Facts = &facts
	case detail.TabPhotos:
		p.Gallery = gallery(v.Views.Photos, img)
	case detail.TabVideos:
		p.Videos = videoCards(v.Views.Videos)
	case detail.TabRecommendations:
		p.Recommendations = recommendationCards(recs, img)
	}
	return p
}

func castCards(cast detail.CastList, img *images.Builder) []CastCard {
	cards := make([]CastCard, 0, len(cast))
	for _, m := range cast {
		cards = append(cards, CastCard{
			ID:        m.ID,
			Name:      m.Name,
			Character: m.Character,
			Image:     img.URL(images.W200, m.ProfilePath, images.NoPicture),
		})
	}
	return cards
}

func gallery(photos detail.PhotoSet, img *images.Builder) *Gallery {
	g := &Gallery{
		Backdrops: make([]string, 0, len(photos.Backdrops)),
		Posters:   make([]string, 0, len(photos.Posters)),
	}
	for _, b := range photos.Backdrops {
		g.Backdrops = append(g.Backdrops, img.URL(images.W500, b.FilePath, images.Landscape))
	}
	for _, p := range photos.Posters {
		g.Posters = append(g.Posters, img.URL(images.W300, p.FilePath, images.Poster))
	}
	return g
}

func videoCards(videos detail.VideoList) []VideoCard {
	cards := make([]VideoCard, 0, len(videos))
	for _, v := range videos {
		cards = append(cards, VideoCard{
			Name: v.Name,
			Site: v.Site,
			Type: v.Type,
			URL:  VideoURL(v.Site, v.Key),
		})
	}
	return cards
}

func recommendationCards(recs detail.RecommendationList, img *images.Builder) []RecommendationCard {
	cards := make([]RecommendationCard, 0, len(recs))
	for _, r := range recs {
		cards = append(cards, RecommendationCard{
			ID:          r.ID,
			Title:       r.Title,
			Date:        r.Date,
			MediaType:   string(r.MediaType),
			VoteAverage: r.VoteAverage,
			Overview:    r.Overview,
			Image:       img.URL(images.W300, r.Poster, images.Poster),
			Link:        detail.Key{Kind: r.MediaType, ID: formatID(r.ID)}.Slug(),
		})
	}
	return cards
}

// VideoURL returns the watch URL for a hosted video, or "" for unknown sites
func VideoURL(site, key string) string {
	if key == "" {
		return ""
	}
	switch site {
	case "YouTube":
		return "https://www.youtube.com/watch?v=" + key
	case "Vimeo":
		return "https://vimeo.com/" + key
	default:
		return ""
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

package detail

import (
	"fmt"
	"strings"

	"github.com/s0up4200/cineparadis/images"
	"github.com/s0up4200/cineparadis/tmdb"
)

// DefaultSiteName is used when no site name is configured
const DefaultSiteName = "CineParadis"

// SiteInfo identifies the site for page metadata
type SiteInfo struct {
	Name    string
	BaseURL string
}

// PageMeta is the document title and social sharing metadata of a detail page
type PageMeta struct {
	DocumentTitle string `json:"document_title"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Canonical     string `json:"canonical"`
	Image         string `json:"image"`
}

// BuildMeta derives page metadata for key. A nil record yields the site
// defaults.
func BuildMeta(site SiteInfo, key Key, record *tmdb.ContentRecord, img *images.Builder) PageMeta {
	name := site.Name
	if name == "" {
		name = DefaultSiteName
	}

	meta := PageMeta{
		DocumentTitle: name,
		Title:         name,
		Description:   fmt.Sprintf("Discover movies and TV shows on %s", name),
	}
	if key.Valid() {
		meta.Canonical = canonicalURL(site.BaseURL, key)
	}
	if record == nil {
		return meta
	}

	title := record.DisplayName()
	meta.DocumentTitle = fmt.Sprintf("%s - %s", title, name)
	meta.Title = fmt.Sprintf("Discover all details of %s - %s", title, name)
	meta.Description = fmt.Sprintf(
		"Get Cast, Crew, Facts, Trivia Info, Photos, Posters, Trailers, Recommendations, Season and Collection info of %s - %s",
		title, name)
	if img == nil {
		img = images.Default()
	}
	meta.Image = img.URL(images.W500, record.BackdropPath, images.None)
	return meta
}

func canonicalURL(base string, key Key) string {
	return strings.TrimRight(base, "/") + "/" + key.Slug()
}

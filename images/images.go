// Package images builds TMDB artwork URLs.
//
// TMDB returns artwork as path fragments such as "/kqjL17yufvn9OVLyXYpvtyrFfak.jpg".
// A Builder prefixes them with a sized base path and substitutes a placeholder
// image when the fragment is missing.
package images

import (
	"strings"
)

// Size is a fixed-width rendition served by the image CDN
type Size string

const (
	W200 Size = "w200"
	W300 Size = "w300"
	W500 Size = "w500"
)

// Placeholder selects the fallback image used for a missing path
type Placeholder int

const (
	// Poster is used by content cards and modal posters
	Poster Placeholder = iota
	// Landscape is used for backdrops and banners
	Landscape
	// NoPicture is used for people and carousel entries
	NoPicture
	// None yields an empty string for a missing path
	None
)

// Default CDN root and placeholder artwork
const (
	DefaultBaseURL              = "https://image.tmdb.org/t/p"
	DefaultPosterPlaceholder    = "https://www.movienewz.com/img/films/poster-holder.jpg"
	DefaultLandscapePlaceholder = "https://user-images.githubusercontent.com/10515204/56117400-9a911800-5f85-11e9-878b-3f998609a6c8.jpg"
	DefaultNoPicture            = "https://upload.wikimedia.org/wikipedia/en/6/60/No_Picture.jpg"
)

// Builder turns path fragments into absolute image URLs
type Builder struct {
	baseURL      string
	placeholders map[Placeholder]string
}

// Placeholders overrides the fallback artwork. Empty fields keep the defaults.
type Placeholders struct {
	Poster    string
	Landscape string
	NoPicture string
}

// NewBuilder creates a Builder. An empty baseURL selects DefaultBaseURL.
func NewBuilder(baseURL string, p Placeholders) *Builder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	b := &Builder{
		baseURL: strings.TrimRight(baseURL, "/"),
		placeholders: map[Placeholder]string{
			Poster:    DefaultPosterPlaceholder,
			Landscape: DefaultLandscapePlaceholder,
			NoPicture: DefaultNoPicture,
		},
	}
	if p.Poster != "" {
		b.placeholders[Poster] = p.Poster
	}
	if p.Landscape != "" {
		b.placeholders[Landscape] = p.Landscape
	}
	if p.NoPicture != "" {
		b.placeholders[NoPicture] = p.NoPicture
	}
	return b
}

// Default returns a Builder with the stock CDN and placeholders
func Default() *Builder {
	return NewBuilder("", Placeholders{})
}

// URL returns the sized URL for path, or the requested placeholder when
// path is empty
func (b *Builder) URL(size Size, path string, fallback Placeholder) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return b.placeholders[fallback]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.baseURL + "/" + string(size) + path
}

// PlaceholderURL returns the fallback artwork for p
func (b *Builder) PlaceholderURL(p Placeholder) string {
	return b.placeholders[p]
}

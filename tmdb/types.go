package tmdb

import (
	"fmt"
	"strings"
)

// MediaKind identifies which TMDB collection a title belongs to
type MediaKind string

const (
	// MediaKindMovie represents a feature film
	MediaKindMovie MediaKind = "movie"
	// MediaKindTV represents a television series
	MediaKindTV MediaKind = "tv"
)

// ParseMediaKind validates a route segment as a media kind
func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(strings.ToLower(strings.TrimSpace(s))) {
	case MediaKindMovie:
		return MediaKindMovie, nil
	case MediaKindTV:
		return MediaKindTV, nil
	default:
		return "", fmt.Errorf("unknown media kind %q (must be 'movie' or 'tv')", s)
	}
}

// String returns the path segment for the kind
func (k MediaKind) String() string {
	return string(k)
}

// IsMovie reports whether the kind is a movie
func (k MediaKind) IsMovie() bool {
	return k == MediaKindMovie
}

// Valid reports whether the kind is one TMDB understands
func (k MediaKind) Valid() bool {
	return k == MediaKindMovie || k == MediaKindTV
}

// ContentRecord is the composite response for a single title. It is never
// modified after the client returns it.
type ContentRecord struct {
	ID                  int64              `json:"id"`
	Kind                MediaKind          `json:"-"`
	Title               string             `json:"title"`
	Name                string             `json:"name"`
	OriginalTitle       string             `json:"original_title"`
	OriginalName        string             `json:"original_name"`
	Overview            string             `json:"overview"`
	Tagline             string             `json:"tagline"`
	Status              string             `json:"status"`
	ReleaseDate         string             `json:"release_date"`
	FirstAirDate        string             `json:"first_air_date"`
	LastAirDate         string             `json:"last_air_date"`
	Runtime             int                `json:"runtime"`
	EpisodeRunTime      []int              `json:"episode_run_time"`
	OriginalLanguage    string             `json:"original_language"`
	VoteAverage         float64            `json:"vote_average"`
	VoteCount           int                `json:"vote_count"`
	BackdropPath        string             `json:"backdrop_path"`
	PosterPath          string             `json:"poster_path"`
	Homepage            string             `json:"homepage"`
	Genres              []Genre            `json:"genres"`
	Networks            []Company          `json:"networks"`
	ProductionCompanies []Company          `json:"production_companies"`
	Seasons             []Season           `json:"seasons"`
	BelongsToCollection *CollectionSummary `json:"belongs_to_collection"`

	// Appended sub-resources. A nil pointer means the response did not
	// carry the sub-resource at all.
	ExternalIDs     *ExternalIDs     `json:"external_ids"`
	Videos          *VideoResults    `json:"videos"`
	Images          *Images          `json:"images"`
	Credits         *Credits         `json:"credits"`
	Recommendations *Recommendations `json:"recommendations"`
	Keywords        *Keywords        `json:"keywords"`
}

// DisplayName returns the series name, falling back to the movie title
func (r *ContentRecord) DisplayName() string {
	if r == nil {
		return ""
	}
	if r.Name != "" {
		return r.Name
	}
	return r.Title
}

// MissingSubResources lists the appended sub-resources absent from the record
func (r *ContentRecord) MissingSubResources() []string {
	if r == nil {
		return nil
	}
	var missing []string
	if r.ExternalIDs == nil {
		missing = append(missing, "external_ids")
	}
	if r.Videos == nil {
		missing = append(missing, "videos")
	}
	if r.Images == nil {
		missing = append(missing, "images")
	}
	if r.Credits == nil {
		missing = append(missing, "credits")
	}
	if r.Recommendations == nil {
		missing = append(missing, "recommendations")
	}
	if r.Keywords == nil {
		missing = append(missing, "keywords")
	}
	return missing
}

// Genre is a TMDB genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Company is a production company or broadcast network
type Company struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

// Season describes one season of a series
type Season struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
	PosterPath   string `json:"poster_path"`
	Overview     string `json:"overview"`
}

// CollectionSummary is the franchise a movie belongs to
type CollectionSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

// ExternalIDs links a title to other databases
type ExternalIDs struct {
	IMDBID      string `json:"imdb_id"`
	TVDBID      int64  `json:"tvdb_id"`
	FacebookID  string `json:"facebook_id"`
	InstagramID string `json:"instagram_id"`
	TwitterID   string `json:"twitter_id"`
}

// VideoResults wraps the appended videos sub-resource
type VideoResults struct {
	Results []Video `json:"results"`
}

// Video is a trailer, teaser or clip hosted on an external site
type Video struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
}

// Images groups artwork by kind
type Images struct {
	Backdrops []ImageFile `json:"backdrops"`
	Posters   []ImageFile `json:"posters"`
	Logos     []ImageFile `json:"logos"`
}

// ImageFile is a single piece of artwork
type ImageFile struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	VoteAverage float64 `json:"vote_average"`
	Language    string  `json:"iso_639_1"`
}

// Credits holds the cast and crew of a title
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is an actor credited on a title
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewMember is a non-acting credit
type CrewMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Job         string `json:"job"`
	ProfilePath string `json:"profile_path"`
}

// Recommendations wraps the appended recommendations sub-resource
type Recommendations struct {
	Page         int              `json:"page"`
	Results      []ContentSummary `json:"results"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
}

// ContentSummary is a short listing entry as returned in result pages
type ContentSummary struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	PosterPath   string    `json:"poster_path"`
	BackdropPath string    `json:"backdrop_path"`
	ReleaseDate  string    `json:"release_date"`
	FirstAirDate string    `json:"first_air_date"`
	MediaType    MediaKind `json:"media_type"`
	VoteAverage  float64   `json:"vote_average"`
}

// Keywords holds keyword tags. Movies return them under "keywords",
// series under "results".
type Keywords struct {
	Keywords []Keyword `json:"keywords"`
	Results  []Keyword `json:"results"`
}

// All returns whichever keyword list the response populated
func (k *Keywords) All() []Keyword {
	if k == nil {
		return nil
	}
	if len(k.Results) > 0 {
		return k.Results
	}
	return k.Keywords
}

// Keyword is a single keyword tag
type Keyword struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

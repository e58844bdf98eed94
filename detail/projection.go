package detail

import (
	"github.com/s0up4200/cineparadis/tmdb"
)

// MaxRecommendations caps the "More Like This" list
const MaxRecommendations = 12

type (
	// VideoList is the ordered trailer and clip list
	VideoList []tmdb.Video
	// PhotoSet groups backdrops, posters and logos
	PhotoSet tmdb.Images
	// CastList is the ordered cast list
	CastList []tmdb.CastMember
	// RecommendationList holds at most MaxRecommendations entries
	RecommendationList []Recommendation
)

// Recommendation is a related title prepared for a content card
type Recommendation struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Poster      string         `json:"poster"`
	Date        string         `json:"date"`
	MediaType   tmdb.MediaKind `json:"media_type"`
	VoteAverage float64        `json:"vote_average"`
	Overview    string         `json:"overview"`
}

// Facts is the fact sheet shown on the Details tab
type Facts struct {
	ID                  int64                   `json:"id"`
	Kind                tmdb.MediaKind          `json:"kind"`
	Title               string                  `json:"title"`
	OriginalTitle       string                  `json:"original_title"`
	Status              string                  `json:"status"`
	ReleaseDate         string                  `json:"release_date"`
	FirstAirDate        string                  `json:"first_air_date"`
	LastAirDate         string                  `json:"last_air_date"`
	Language            string                  `json:"language"`
	Runtime             int                     `json:"runtime"`
	Networks            []tmdb.Company          `json:"networks"`
	Seasons             []tmdb.Season           `json:"seasons"`
	Collection          *tmdb.CollectionSummary `json:"collection,omitempty"`
	ProductionCompanies []tmdb.Company          `json:"production_companies"`
	Keywords            []tmdb.Keyword          `json:"keywords"`
	Crew                []tmdb.CrewMember       `json:"crew"`
}

// Views bundles every derived view of one record. It is computed once per
// record and never mutated.
type Views struct {
	Videos          VideoList          `json:"videos"`
	Photos          PhotoSet           `json:"photos"`
	Cast            CastList           `json:"cast"`
	Facts           Facts              `json:"facts"`
	Recommendations RecommendationList `json:"recommendations"`
}

// Project derives all views from record in one pass
func Project(record *tmdb.ContentRecord) *Views {
	return &Views{
		Videos:          ExtractVideos(record),
		Photos:          ExtractPhotos(record),
		Cast:            ExtractCast(record),
		Facts:           ExtractFacts(record),
		Recommendations: ExtractRecommendations(record),
	}
}

// ExtractVideos returns the videos sub-resource, or an empty list
func ExtractVideos(record *tmdb.ContentRecord) VideoList {
	if record == nil || record.Videos == nil {
		return VideoList{}
	}
	return append(VideoList{}, record.Videos.Results...)
}

// ExtractPhotos returns the images sub-resource, or an empty set
func ExtractPhotos(record *tmdb.ContentRecord) PhotoSet {
	photos := PhotoSet{
		Backdrops: []tmdb.ImageFile{},
		Posters:   []tmdb.ImageFile{},
		Logos:     []tmdb.ImageFile{},
	}
	if record == nil || record.Images == nil {
		return photos
	}
	photos.Backdrops = append(photos.Backdrops, record.Images.Backdrops...)
	photos.Posters = append(photos.Posters, record.Images.Posters...)
	photos.Logos = append(photos.Logos, record.Images.Logos...)
	return photos
}

// ExtractCast returns the cast entries of the credits sub-resource
func ExtractCast(record *tmdb.ContentRecord) CastList {
	if record == nil || record.Credits == nil {
		return CastList{}
	}
	return append(CastList{}, record.Credits.Cast...)
}

// ExtractRecommendations returns the first MaxRecommendations related titles
// in API order. Series carry name/first_air_date where movies carry
// title/release_date; the card image is the backdrop, not the poster.
func ExtractRecommendations(record *tmdb.ContentRecord) RecommendationList {
	list := RecommendationList{}
	if record == nil || record.Recommendations == nil {
		return list
	}

	results := record.Recommendations.Results
	if len(results) > MaxRecommendations {
		results = results[:MaxRecommendations]
	}

	for _, r := range results {
		title := r.Title
		if title == "" {
			title = r.Name
		}
		date := r.ReleaseDate
		if date == "" {
			date = r.FirstAirDate
		}
		mediaType := r.MediaType
		if mediaType == "" {
			mediaType = record.Kind
		}
		list = append(list, Recommendation{
			ID:          r.ID,
			Title:       title,
			Poster:      r.BackdropPath,
			Date:        date,
			MediaType:   mediaType,
			VoteAverage: r.VoteAverage,
			Overview:    r.Overview,
		})
	}
	return list
}

// ExtractFacts collects the scalar metadata for the fact sheet
func ExtractFacts(record *tmdb.ContentRecord) Facts {
	facts := Facts{
		Networks:            []tmdb.Company{},
		Seasons:             []tmdb.Season{},
		ProductionCompanies: []tmdb.Company{},
		Keywords:            []tmdb.Keyword{},
		Crew:                []tmdb.CrewMember{},
	}
	if record == nil {
		return facts
	}

	facts.ID = record.ID
	facts.Kind = record.Kind
	facts.Title = record.DisplayName()
	facts.OriginalTitle = record.OriginalTitle
	if facts.OriginalTitle == "" {
		facts.OriginalTitle = record.OriginalName
	}
	facts.Status = record.Status
	facts.ReleaseDate = record.ReleaseDate
	facts.FirstAirDate = record.FirstAirDate
	facts.LastAirDate = record.LastAirDate
	facts.Language = record.OriginalLanguage
	facts.Runtime = record.Runtime
	if facts.Runtime == 0 && len(record.EpisodeRunTime) > 0 {
		facts.Runtime = record.EpisodeRunTime[0]
	}
	facts.Collection = record.BelongsToCollection
	facts.Networks = append(facts.Networks, record.Networks...)
	facts.Seasons = append(facts.Seasons, record.Seasons...)
	facts.ProductionCompanies = append(facts.ProductionCompanies, record.ProductionCompanies...)
	facts.Keywords = append(facts.Keywords, record.Keywords.All()...)
	if record.Credits != nil {
		facts.Crew = append(facts.Crew, record.Credits.Crew...)
	}
	return facts
}

// Directors returns the crew credited with the Director job
func (f Facts) Directors() []string {
	var names []string
	for _, c := range f.Crew {
		if c.Job == "Director" {
			names = append(names, c.Name)
		}
	}
	return names
}

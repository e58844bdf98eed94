package detail

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cineparadis/tmdb"
)

func TestProjectionEmptyOnMissingSubResources(t *testing.T) {
	records := map[string]*tmdb.ContentRecord{
		"nil record":    nil,
		"bare record":   {ID: 1, Title: "Bare"},
		"empty wrapper": {ID: 2, Videos: &tmdb.VideoResults{}, Images: &tmdb.Images{}, Credits: &tmdb.Credits{}, Recommendations: &tmdb.Recommendations{}, Keywords: &tmdb.Keywords{}},
	}

	for name, record := range records {
		t.Run(name, func(t *testing.T) {
			videos := ExtractVideos(record)
			require.NotNil(t, videos)
			assert.Empty(t, videos)

			photos := ExtractPhotos(record)
			assert.NotNil(t, photos.Backdrops)
			assert.NotNil(t, photos.Posters)
			assert.NotNil(t, photos.Logos)
			assert.Empty(t, photos.Backdrops)

			cast := ExtractCast(record)
			require.NotNil(t, cast)
			assert.Empty(t, cast)

			recs := ExtractRecommendations(record)
			require.NotNil(t, recs)
			assert.Empty(t, recs)

			facts := ExtractFacts(record)
			assert.NotNil(t, facts.Keywords)
			assert.NotNil(t, facts.Crew)
			assert.Empty(t, facts.Networks)

			views := Project(record)
			require.NotNil(t, views)
			assert.Empty(t, views.Cast)
		})
	}
}

func TestExtractRecommendationsCap(t *testing.T) {
	for _, n := range []int{0, 1, 11, 12, 13, 20, 100} {
		t.Run(fmt.Sprintf("%d results", n), func(t *testing.T) {
			results := make([]tmdb.ContentSummary, n)
			for i := range results {
				results[i] = tmdb.ContentSummary{ID: int64(i + 1), Title: fmt.Sprintf("T%d", i+1)}
			}
			record := &tmdb.ContentRecord{Recommendations: &tmdb.Recommendations{Results: results}}

			got := ExtractRecommendations(record)
			assert.LessOrEqual(t, len(got), MaxRecommendations)
			assert.Equal(t, min(n, MaxRecommendations), len(got))
			for i, r := range got {
				assert.Equal(t, int64(i+1), r.ID, "API order preserved")
			}
		})
	}
}

func TestExtractRecommendationsFallbacks(t *testing.T) {
	record := &tmdb.ContentRecord{
		Kind: tmdb.MediaKindTV,
		Recommendations: &tmdb.Recommendations{Results: []tmdb.ContentSummary{
			{
				ID:           1,
				Title:        "Heat",
				Name:         "ignored",
				ReleaseDate:  "1995-12-15",
				FirstAirDate: "ignored",
				PosterPath:   "/poster1.jpg",
				BackdropPath: "/backdrop1.jpg",
				MediaType:    tmdb.MediaKindMovie,
				VoteAverage:  7.9,
				Overview:     "Cops and robbers.",
			},
			{
				ID:           2,
				Name:         "The Wire",
				FirstAirDate: "2002-06-02",
				PosterPath:   "/poster2.jpg",
				MediaType:    tmdb.MediaKindTV,
			},
			{
				ID:         3,
				Title:      "No Media Type",
				PosterPath: "/poster3.jpg",
			},
		}},
	}

	want := RecommendationList{
		{ID: 1, Title: "Heat", Poster: "/backdrop1.jpg", Date: "1995-12-15", MediaType: tmdb.MediaKindMovie, VoteAverage: 7.9, Overview: "Cops and robbers."},
		{ID: 2, Title: "The Wire", Poster: "", Date: "2002-06-02", MediaType: tmdb.MediaKindTV},
		{ID: 3, Title: "No Media Type", Poster: "", Date: "", MediaType: tmdb.MediaKindTV},
	}

	if diff := cmp.Diff(want, ExtractRecommendations(record)); diff != "" {
		t.Errorf("ExtractRecommendations() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractVideosPhotosCast(t *testing.T) {
	record := &tmdb.ContentRecord{
		Videos: &tmdb.VideoResults{Results: []tmdb.Video{
			{ID: "a", Key: "k1", Site: "YouTube", Type: "Trailer"},
			{ID: "b", Key: "k2", Site: "Vimeo", Type: "Clip"},
		}},
		Images: &tmdb.Images{
			Backdrops: []tmdb.ImageFile{{FilePath: "/b.jpg", Width: 1920}},
			Posters:   []tmdb.ImageFile{{FilePath: "/p.jpg"}, {FilePath: "/p2.jpg"}},
		},
		Credits: &tmdb.Credits{
			Cast: []tmdb.CastMember{{ID: 1, Name: "Al Pacino", Character: "Hanna"}, {ID: 2, Name: "Robert De Niro", Character: "McCauley"}},
			Crew: []tmdb.CrewMember{{ID: 3, Name: "Michael Mann", Job: "Director"}},
		},
	}

	if diff := cmp.Diff(VideoList(record.Videos.Results), ExtractVideos(record)); diff != "" {
		t.Errorf("ExtractVideos() mismatch (-want +got):\n%s", diff)
	}

	wantPhotos := PhotoSet{
		Backdrops: record.Images.Backdrops,
		Posters:   record.Images.Posters,
		Logos:     []tmdb.ImageFile{},
	}
	if diff := cmp.Diff(wantPhotos, ExtractPhotos(record)); diff != "" {
		t.Errorf("ExtractPhotos() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(CastList(record.Credits.Cast), ExtractCast(record)); diff != "" {
		t.Errorf("ExtractCast() mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectionDoesNotAlias(t *testing.T) {
	record := &tmdb.ContentRecord{
		Credits: &tmdb.Credits{Cast: []tmdb.CastMember{{Name: "Original"}}},
	}
	cast := ExtractCast(record)
	cast[0].Name = "Changed"
	assert.Equal(t, "Original", record.Credits.Cast[0].Name)
}

func TestExtractFacts(t *testing.T) {
	t.Run("movie", func(t *testing.T) {
		record := &tmdb.ContentRecord{
			ID:                  949,
			Kind:                tmdb.MediaKindMovie,
			Title:               "Heat",
			OriginalTitle:       "Heat",
			Status:              "Released",
			ReleaseDate:         "1995-12-15",
			OriginalLanguage:    "en",
			Runtime:             170,
			BelongsToCollection: nil,
			ProductionCompanies: []tmdb.Company{{ID: 1, Name: "Forward Pass"}},
			Keywords:            &tmdb.Keywords{Keywords: []tmdb.Keyword{{ID: 1, Name: "heist"}}},
			Credits:             &tmdb.Credits{Crew: []tmdb.CrewMember{{Name: "Michael Mann", Job: "Director"}, {Name: "Dante Spinotti", Job: "Director of Photography"}}},
		}

		facts := ExtractFacts(record)
		assert.Equal(t, "Heat", facts.Title)
		assert.Equal(t, 170, facts.Runtime)
		assert.Equal(t, "en", facts.Language)
		assert.Equal(t, "heist", facts.Keywords[0].Name)
		assert.Equal(t, []string{"Michael Mann"}, facts.Directors())
		assert.Nil(t, facts.Collection)
	})

	t.Run("series", func(t *testing.T) {
		record := &tmdb.ContentRecord{
			ID:             1438,
			Kind:           tmdb.MediaKindTV,
			Name:           "The Wire",
			OriginalName:   "The Wire",
			FirstAirDate:   "2002-06-02",
			LastAirDate:    "2008-03-09",
			EpisodeRunTime: []int{60},
			Networks:       []tmdb.Company{{ID: 49, Name: "HBO"}},
			Seasons:        []tmdb.Season{{SeasonNumber: 1, EpisodeCount: 13}},
			Keywords:       &tmdb.Keywords{Results: []tmdb.Keyword{{ID: 2, Name: "baltimore"}}},
		}

		facts := ExtractFacts(record)
		assert.Equal(t, "The Wire", facts.Title)
		assert.Equal(t, "The Wire", facts.OriginalTitle)
		assert.Equal(t, 60, facts.Runtime)
		assert.Equal(t, "HBO", facts.Networks[0].Name)
		assert.Len(t, facts.Seasons, 1)
		assert.Equal(t, "baltimore", facts.Keywords[0].Name)
		assert.Empty(t, facts.Crew)
	})
}

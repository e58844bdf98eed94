package render

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cineparadis/detail"
	"github.com/s0up4200/cineparadis/images"
	"github.com/s0up4200/cineparadis/tmdb"
)

func loadedView(tab detail.Tab) detail.View {
	record := &tmdb.ContentRecord{
		ID:           949,
		Kind:         tmdb.MediaKindMovie,
		Title:        "Heat",
		ReleaseDate:  "1995-12-15",
		Tagline:      "A Los Angeles crime saga",
		Overview:     "Cops and robbers.",
		Runtime:      170,
		VoteAverage:  7.9,
		BackdropPath: "/heat-backdrop.jpg",
		Videos: &tmdb.VideoResults{Results: []tmdb.Video{
			{Key: "abc", Name: "Trailer", Site: "YouTube", Type: "Trailer"},
			{Key: "xyz", Name: "Elsewhere", Site: "Dailymotion", Type: "Clip"},
		}},
		Images: &tmdb.Images{
			Backdrops: []tmdb.ImageFile{{FilePath: "/b1.jpg"}},
			Posters:   []tmdb.ImageFile{{FilePath: "/p1.jpg"}, {FilePath: ""}},
		},
		Credits: &tmdb.Credits{
			Cast: []tmdb.CastMember{{ID: 1158, Name: "Al Pacino", Character: "Vincent Hanna"}},
			Crew: []tmdb.CrewMember{{Name: "Michael Mann", Job: "Director"}},
		},
		Recommendations: &tmdb.Recommendations{Results: []tmdb.ContentSummary{
			{ID: 1438, Name: "The Wire", FirstAirDate: "2002-06-02", MediaType: tmdb.MediaKindTV, VoteAverage: 8.6},
		}},
	}
	key := detail.Key{Kind: tmdb.MediaKindMovie, ID: "949"}
	return detail.View{
		Key:     key,
		State:   detail.StateLoaded,
		Content: record,
		Views:   detail.Project(record),
		Tab:     tab,
		Meta:    detail.BuildMeta(detail.SiteInfo{Name: "CineParadis", BaseURL: "https://example.org"}, key, record, images.Default()),
	}
}

func TestBuildPageTabs(t *testing.T) {
	img := images.Default()

	t.Run("cast", func(t *testing.T) {
		p := BuildPage(loadedView(detail.TabCast), nil, img)
		require.Len(t, p.Cast, 1)
		assert.Equal(t, "Al Pacino", p.Cast[0].Name)
		assert.Equal(t, images.DefaultNoPicture, p.Cast[0].Image)
		assert.Nil(t, p.Facts)
		assert.Nil(t, p.Gallery)
		assert.Equal(t, "movie/949", p.Key)
		assert.Equal(t, "Top Cast", p.TabLabel)
		assert.Len(t, p.Tabs, detail.TabCount)
	})

	t.Run("facts", func(t *testing.T) {
		p := BuildPage(loadedView(detail.TabFacts), nil, img)
		require.NotNil(t, p.Facts)
		assert.Equal(t, []string{"Michael Mann"}, p.Facts.Directors())
	})

	t.Run("photos", func(t *testing.T) {
		p := BuildPage(loadedView(detail.TabPhotos), nil, img)
		require.NotNil(t, p.Gallery)
		assert.Equal(t, []string{"https://image.tmdb.org/t/p/w500/b1.jpg"}, p.Gallery.Backdrops)
		assert.Equal(t, []string{"https://image.tmdb.org/t/p/w300/p1.jpg", images.DefaultPosterPlaceholder}, p.Gallery.Posters)
	})

	t.Run("videos", func(t *testing.T) {
		p := BuildPage(loadedView(detail.TabVideos), nil, img)
		require.Len(t, p.Videos, 2)
		assert.Equal(t, "https://www.youtube.com/watch?v=abc", p.Videos[0].URL)
		assert.Empty(t, p.Videos[1].URL)
	})

	t.Run("recommendations", func(t *testing.T) {
		p := BuildPage(loadedView(detail.TabRecommendations), nil, img)
		require.Len(t, p.Recommendations, 1)
		r := p.Recommendations[0]
		assert.Equal(t, "The Wire", r.Title)
		assert.Equal(t, "tv/1438", r.Link)
		assert.Equal(t, images.DefaultPosterPlaceholder, r.Image)
	})

	t.Run("filtered recommendations", func(t *testing.T) {
		p := BuildPage(loadedView(detail.TabRecommendations), detail.RecommendationList{}, img)
		assert.NotNil(t, p.Recommendations)
		assert.Empty(t, p.Recommendations)
	})
}

func TestBuildPageBanner(t *testing.T) {
	p := BuildPage(loadedView(detail.TabCast), nil, nil)
	require.NotNil(t, p.Banner)
	assert.Equal(t, "Heat", p.Banner.Title)
	assert.Equal(t, 170, p.Banner.Runtime)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/heat-backdrop.jpg", p.Banner.Backdrop)
	assert.Equal(t, images.DefaultPosterPlaceholder, p.Banner.Poster)
	assert.Equal(t, "Heat - CineParadis", p.Meta.DocumentTitle)
}

func TestBuildPageNotLoaded(t *testing.T) {
	key := detail.Key{Kind: tmdb.MediaKindTV, ID: "1"}

	loading := BuildPage(detail.View{Key: key, State: detail.StateLoading}, nil, nil)
	assert.Equal(t, "loading", loading.State)
	assert.Nil(t, loading.Banner)
	assert.Nil(t, loading.Error)

	failed := BuildPage(detail.View{
		Key:       key,
		State:     detail.StateFailed,
		Err:       &tmdb.NotFoundError{Kind: tmdb.MediaKindTV, ID: "1"},
		ErrorKind: detail.ErrorNotFound,
	}, nil, nil)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "not_found", failed.Error.Kind)
	assert.Nil(t, failed.Banner)
	assert.Nil(t, failed.Cast)

	raw, err := json.Marshal(failed)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"banner"`)
}

func TestVideoURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=k", VideoURL("YouTube", "k"))
	assert.Equal(t, "https://vimeo.com/k", VideoURL("Vimeo", "k"))
	assert.Empty(t, VideoURL("YouTube", ""))
	assert.Empty(t, VideoURL("Other", "k"))
}

func TestFormatPage(t *testing.T) {
	f := NewConsoleFormatter()

	t.Run("loaded", func(t *testing.T) {
		out := f.FormatPage(BuildPage(loadedView(detail.TabCast), nil, nil))
		assert.Contains(t, out, "Heat (1995)")
		assert.Contains(t, out, "[Top Cast]  Details  Photos  Videos  More Like This")
		assert.Contains(t, out, "╰── Al Pacino")
		assert.Contains(t, out, "as Vincent Hanna")
		assert.Contains(t, out, "Runtime: 170m")
	})

	t.Run("recommendations", func(t *testing.T) {
		out := f.FormatPage(BuildPage(loadedView(detail.TabRecommendations), nil, nil))
		assert.Contains(t, out, "[More Like This]")
		assert.Contains(t, out, "╰── The Wire (2002)")
		assert.Contains(t, out, "tv/1438 | Rating: 8.6")
	})

	t.Run("empty recommendations", func(t *testing.T) {
		out := f.FormatPage(BuildPage(loadedView(detail.TabRecommendations), detail.RecommendationList{}, nil))
		assert.Contains(t, out, "No recommendations")
	})

	t.Run("failed", func(t *testing.T) {
		out := f.FormatPage(Page{
			Key:   "movie/1",
			State: detail.StateFailed.String(),
			Error: &PageError{Kind: "network", Message: errors.New("boom").Error()},
		})
		assert.Equal(t, "Failed to load movie/1 (network): boom\n", out)
	})

	t.Run("idle", func(t *testing.T) {
		out := f.FormatPage(BuildPage(detail.View{}, nil, nil))
		assert.Equal(t, "Nothing selected\n", out)
	})

	t.Run("loading", func(t *testing.T) {
		out := f.FormatPage(Page{Key: "tv/2", State: detail.StateLoading.String()})
		assert.Equal(t, "Loading tv/2...\n", out)
	})
}

package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabState(t *testing.T) {
	var s TabState
	assert.Equal(t, TabCast, s.Current())

	changed, err := s.Select(2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, TabPhotos, s.Current())

	changed, err = s.Select(2)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, TabPhotos, s.Current())

	_, err = s.Select(TabCount)
	assert.ErrorIs(t, err, ErrInvalidTab)
	assert.Equal(t, TabPhotos, s.Current())

	s.Reset()
	assert.Equal(t, TabCast, s.Current())
}

func TestTabLabels(t *testing.T) {
	tests := []struct {
		tab  Tab
		want string
	}{
		{TabCast, "Top Cast"},
		{TabFacts, "Details"},
		{TabPhotos, "Photos"},
		{TabVideos, "Videos"},
		{TabRecommendations, "More Like This"},
		{Tab(7), "Tab(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tab.String())
		})
	}

	assert.Len(t, Tabs(), TabCount)
	for i, tab := range Tabs() {
		assert.Equal(t, Tab(i), tab)
		assert.True(t, tab.Valid())
	}
	assert.False(t, Tab(-1).Valid())
}

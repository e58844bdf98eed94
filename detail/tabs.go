package detail

import (
	"errors"
	"fmt"
)

// Tab selects which derived view a detail page shows
type Tab int

const (
	TabCast Tab = iota
	TabFacts
	TabPhotos
	TabVideos
	TabRecommendations
)

// TabCount is the number of selectable tabs
const TabCount = 5

// ErrInvalidTab is returned when selecting an index outside 0..TabCount-1
var ErrInvalidTab = errors.New("invalid tab index")

// Tabs lists every tab in display order
func Tabs() []Tab {
	return []Tab{TabCast, TabFacts, TabPhotos, TabVideos, TabRecommendations}
}

// String returns the tab's display label
func (t Tab) String() string {
	switch t {
	case TabCast:
		return "Top Cast"
	case TabFacts:
		return "Details"
	case TabPhotos:
		return "Photos"
	case TabVideos:
		return "Videos"
	case TabRecommendations:
		return "More Like This"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// Valid reports whether t is one of the five tabs
func (t Tab) Valid() bool {
	return t >= TabCast && t <= TabRecommendations
}

// TabState tracks the selected tab. The zero value selects TabCast.
type TabState struct {
	current Tab
}

// Current returns the selected tab
func (s *TabState) Current() Tab {
	return s.current
}

// Select moves to index. Selecting the current tab is a no-op and reports
// changed=false.
func (s *TabState) Select(index int) (changed bool, err error) {
	t := Tab(index)
	if !t.Valid() {
		return false, fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidTab, index, TabCount-1)
	}
	if t == s.current {
		return false, nil
	}
	s.current = t
	return true, nil
}

// Reset returns to the default tab
func (s *TabState) Reset() {
	s.current = TabCast
}

package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddstop/ddstop/internal/state"
)

func TestTab_Title(t *testing.T) {
	tests := []struct {
		tab    Tab
		expect string
	}{
		{TabWriters, "Writers"},
		{TabReader, "Reader"},
		{TabTopics, "Topics"},
		{TabAbnormalities, "Abnormalities"},
		{Tab(99), ""},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.tab.Title())
		})
	}
}

func TestTab_Cycling(t *testing.T) {
	tab := TabWriters
	for i := 0; i < 4; i++ {
		tab = tab.Next()
	}
	assert.Equal(t, TabWriters, tab, "four next actions return to the start")

	assert.Equal(t, TabAbnormalities, TabWriters.Prev())
	assert.Equal(t, TabWriters, TabAbnormalities.Next())
	assert.Equal(t, TabTopics, TabAbnormalities.Prev())

	for _, tab := range AllTabs() {
		assert.Equal(t, tab, tab.Next().Prev())
		assert.Equal(t, tab, tab.Prev().Next())
	}
}

func TestTab_InvalidNormalizes(t *testing.T) {
	assert.Equal(t, TabReader, Tab(-3).Next())
	assert.Equal(t, TabAbnormalities, Tab(42).Prev())
}

func TestAllTabs(t *testing.T) {
	tabs := AllTabs()
	require.Len(t, tabs, int(tabCount))
	for i, tab := range tabs {
		assert.Equal(t, Tab(i), tab)
	}
}

func TestTabs_EachTabHasItsOwnView(t *testing.T) {
	tabs := NewTabs(0)
	assert.Equal(t, TabWriters, tabs.Active())

	seen := make(map[View]bool)
	for _, tab := range AllTabs() {
		v := tabs.View(tab)
		require.NotNil(t, v)
		assert.Equal(t, tab.Title(), v.Title())
		assert.False(t, seen[v])
		seen[v] = true
	}
}

func TestTabs_NavigationStaysInActiveView(t *testing.T) {
	tabs := NewTabs(0)
	snap := state.Snapshot{
		Writers: []state.Writer{{GUID: guid(1)}, {GUID: guid(2)}},
		Topics:  []state.Topic{{Name: "a"}, {Name: "b"}},
	}
	for _, tab := range AllTabs() {
		tabs.View(tab).Refresh(snap)
	}

	tabs.Select(TabTopics)
	tabs.ActiveView().LastItem()

	idx, ok := tabs.View(TabTopics).Selected()
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = tabs.View(TabWriters).Selected()
	assert.False(t, ok, "other tabs keep their own cursor")
}

func TestTabs_NextPrev(t *testing.T) {
	tabs := NewTabs(0)
	tabs.Prev()
	assert.Equal(t, TabAbnormalities, tabs.Active())
	assert.Equal(t, "Abnormalities", tabs.ActiveView().Title())
	tabs.Next()
	tabs.Next()
	assert.Equal(t, TabReader, tabs.Active())
}

//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchNarrowsList(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog("--route", "?page=/VIDEOS"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("3/3"), "all videos should be listed")

	mark := tf.Mark()
	require.NoError(t, tf.Search("substrate"))
	require.True(t, tf.SeePlainAfter(mark, "1/3"), "search should leave one video")
	require.True(t, tf.SeePlainAfter(mark, "[Search: substrate]"), "status should show the query")
	require.True(t, tf.SeePlainAfter(mark, "1 matches"))
}

func TestSearchCancelRestoresQuery(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog("--route", "?page=/VIDEOS"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("3/3"))

	tf.SendKeys(KeySearch)
	tf.SendKeys("zulu")
	require.True(t, tf.SeePlain("1/3"), "search should filter while typing")

	mark := tf.Mark()
	tf.SendKeys(KeyEsc)
	require.True(t, tf.SeePlainAfter(mark, "3/3"), "esc should restore the list")
}

func TestFacetPanelToggle(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog("--route", "?page=/VIDEOS"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("3/3"))

	tf.SendKeys(KeyFacets)
	require.True(t, tf.SeePlain("Devoxx"), "f should open the facet panel")
	require.True(t, tf.SeePlain("Dirk Lemmermann"), "speakers should be resolved to names")

	// first row is the Type header, then Talk
	mark := tf.Mark()
	tf.SendKeys(KeyDown)
	tf.SendKeys(KeySpace)
	require.True(t, tf.SeePlainAfter(mark, "[Type: Talk]"), "status should list the active filter")
	require.True(t, tf.SeePlainAfter(mark, "2/3"))

	mark = tf.Mark()
	tf.SendKeys("X")
	require.True(t, tf.SeePlainAfter(mark, "3/3"), "X should clear every filter")
}

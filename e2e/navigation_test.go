//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwitchViewsWithNumberKeys(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("JavaFX Content Browser"), "Should start on the home page")

	tf.View("8")
	require.True(t, tf.SeePlain("CalendarFX Deep Dive"), "8 should show the videos")
	require.True(t, tf.SeePlain("Zulu Substrate"))

	tf.View("5")
	require.True(t, tf.SeePlain("Johan Vos"), "5 should show the people")

	mark := tf.Mark()
	tf.View("1")
	require.True(t, tf.SeePlainAfter(mark, "Catalog"), "1 should return home")
}

func TestCursorMovesSelection(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog("--route", "?page=/VIDEOS"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Building calendars."), "first video should be selected")

	mark := tf.Mark()
	tf.Down()
	require.True(t, tf.SeePlainAfter(mark, "JavaFX on phones."), "detail should follow the cursor")
}

func TestTabCyclesViews(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog("--route", "?page=/HOME"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	mark := tf.Mark()
	tf.SendKeys(KeyTab)
	require.True(t, tf.SeePlainAfter(mark, "JavaFX 23 released"), "tab should move to the news view")
}

func TestOpenPersonFromVideo(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog("--route", "?page=/VIDEOS&item=v2"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("JavaFX on phones."), "route item should be selected")

	mark := tf.Mark()
	tf.SendKeys(KeyPerson)
	require.True(t, tf.SeePlainAfter(mark, "OpenJFX lead."), "p should open the speaker")
}

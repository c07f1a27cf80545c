//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestItemPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog("--route", "?page=/VIDEOS&item=v3"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Native images."))

	initialOutput := tf.Snapshot()
	tf.SendKeys(KeyPager)
	require.True(t, tf.WaitFor(func(s string) bool {
		return s != initialOutput
	}, 2*time.Second), "pager should open")
	require.True(t, tf.SeePlain("Zulu Substrate"), "pager should show the item")

	mark := tf.Mark()
	tf.Quit()
	require.True(t, tf.SeePlainAfter(mark, "CalendarFX Deep Dive"), "Should return to the list after closing the pager")
	require.Nil(t, tf.cmd.ProcessState, "q in the pager must not quit the app")
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("JavaFX Content Browser"))

	mark := tf.Mark()
	tf.SendKeys(KeyHelpPager)
	require.True(t, tf.SeePlainAfter(mark, "Facet Panel"), "P should page the help text")

	mark = tf.Mark()
	tf.Quit()
	require.True(t, tf.SeePlainAfter(mark, "JavaFX Content Browser"), "Should return to the home page")
}

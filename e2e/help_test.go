//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// runs directly, not through a PTY, since it exits at once
	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "Usage")
	require.Contains(t, output, "--route")
	require.Contains(t, output, "--catalog")
	for _, sub := range []string{"routes", "facets", "related"} {
		require.True(t, strings.Contains(output, sub), "help should list the %s command", sub)
	}
}

func TestHelpOverlay(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("JavaFX Content Browser"))

	tf.SendKeys(KeyHelp)
	require.True(t, tf.SeePlain("Content Browser Help"), "? should open the help overlay")
	require.True(t, tf.SeePlain("open in pager"), "help should list the bindings")

	// q closes the overlay instead of quitting
	tf.SendKeys(KeyQuit)
	require.True(t, tf.SeePlain("JavaFX Content Browser"), "q should close the overlay")
	require.Nil(t, tf.cmd.ProcessState, "app should still be running")
}

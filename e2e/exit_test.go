//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// waitExit waits for the process to end, falling back to Ctrl+C once
func waitExit(t *testing.T, tf *TUITestFramework, done <-chan error) {
	t.Helper()
	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "process should exit cleanly")
		return
	case <-time.After(1500 * time.Millisecond):
		t.Logf("quit did not work within 1.5 seconds, using Ctrl+C")
		tf.SendCtrlC()
	}

	select {
	case exitErr := <-done:
		t.Logf("Process exited with Ctrl+C (exit code: %v)", exitErr)
		t.Error("application needed Ctrl+C to exit")
	case <-time.After(750 * time.Millisecond):
		t.Error("Application did not exit within total timeout")
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		tf.SendCtrlC()
	}
}

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("JavaFX Content Browser"), "Should show the home page")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	tf.Quit()
	waitExit(t, tf, done)
}

func TestApplicationExitWithCtrlCInSearch(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithCatalog("--route", "?page=/VIDEOS"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("CalendarFX Deep Dive"), "Should list videos")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	tf.SendKeys(KeySearch)
	tf.SendKeys("q")
	require.True(t, tf.SeePlain("Search: q"), "q should be typed into the prompt, not quit")

	tf.SendCtrlC()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after Ctrl+C")
	}
}

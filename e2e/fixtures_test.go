//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// testCatalog is small enough that every item fits on screen
const testCatalog = `
[[person]]
id = "dirk"
name = "Dirk Lemmermann"
summary = "JavaFX consultant."
company = "dlsc"

[[person]]
id = "johan"
name = "Johan Vos"
summary = "OpenJFX lead."

[[company]]
id = "dlsc"
name = "DLSC Software"

[[video]]
id = "v1"
title = "CalendarFX Deep Dive"
date = "2023-10-02"
people = ["dirk"]
summary = "Building calendars."
[video.attributes]
Event = "Devoxx"
Type = "Talk"

[[video]]
id = "v2"
title = "Apples on Mobile"
date = "2022-05-11"
people = ["johan"]
summary = "JavaFX on phones."
[video.attributes]
Event = "JavaOne"
Type = "Talk"

[[video]]
id = "v3"
title = "Zulu Substrate"
date = "2024-01-20"
people = ["johan"]
summary = "Native images."
[video.attributes]
Event = "Devoxx"
Type = "Interview"

[[news]]
id = "n1"
title = "JavaFX 23 released"
date = "2024-09-17"
`

// CreateTestWorkspace creates the temporary directory holding the catalog,
// the config and the log
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tf.workspace = tf.t.TempDir()
	return tf.workspace, nil
}

// WriteCatalog writes the test catalog to the workspace and returns its path
func (tf *TUITestFramework) WriteCatalog() (string, error) {
	return tf.writeFile("catalog.toml", testCatalog)
}

// WriteConfig writes a config file to the workspace and returns its path
func (tf *TUITestFramework) WriteConfig(content string) (string, error) {
	return tf.writeFile("config.toml", content)
}

func (tf *TUITestFramework) writeFile(name, content string) (string, error) {
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return "", err
		}
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// StartWithCatalog writes the test catalog and starts the browser on it
func (tf *TUITestFramework) StartWithCatalog(args ...string) error {
	path, err := tf.WriteCatalog()
	if err != nil {
		return err
	}
	return tf.StartApp(append([]string{"--catalog", path}, args...)...)
}

// Mark returns the current output position for SeePlainAfter
func (tf *TUITestFramework) Mark() int {
	tf.t.Helper()
	return len(tf.Snapshot())
}

// SeePlainAfter waits for text to appear in the output written after mark.
// The renderer only repaints changed lines, so text already on screen is
// not seen again.
func (tf *TUITestFramework) SeePlainAfter(mark int, text string) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		if mark > len(s) {
			mark = 0
		}
		return strings.Contains(ansiRe.ReplaceAllString(s[mark:], ""), text)
	}, 3*time.Second)
}

package pages

import "contentbrowser/internal/domain"

const openJFXMarkdown = `# OpenJFX

OpenJFX is the open source home of JavaFX, a client application platform for
desktop, mobile and embedded systems built on Java.

## Getting started

- Download the SDK or add the ` + "`org.openjfx`" + ` artifacts to your build.
- Modules: ` + "`javafx.base`, `javafx.graphics`, `javafx.controls`, `javafx.fxml`, `javafx.media`, `javafx.web`" + `.
- Releases follow the JDK cadence, one feature release every six months.

## Links

- <https://openjfx.io>
- <https://github.com/openjdk/jfx>
- <https://wiki.openjdk.org/display/OpenJFX>
`

// InfoPage is a static page
type InfoPage struct {
	view domain.View
}

// NewInfoPage creates the static page of view
func NewInfoPage(view domain.View) *InfoPage {
	return &InfoPage{view: view}
}

func (p *InfoPage) View() domain.View {
	return p.view
}

func (p *InfoPage) Close() {}

// Markdown returns the page text
func (p *InfoPage) Markdown() string {
	if p.view == domain.ViewOpenJFX {
		return openJFXMarkdown
	}
	return "# " + p.view.String() + "\n\nNothing to show here yet.\n"
}

package services

import (
	"bytes"
	"html/template"

	"rps-frame-server/models"
)

// frameVersion is the protocol version advertised by every document.
const frameVersion = "vNext"

// maxButtons is the protocol ceiling; extra buttons are dropped, not an
// error, so rendering stays total.
const maxButtons = 4

var frameTmpl = template.Must(template.New("frame").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8" />
<meta property="og:title" content="{{.Title}}" />
<meta property="og:image" content="{{.ImageURL}}" />
<meta property="fc:frame" content="{{.Version}}" />
<meta property="fc:frame:image" content="{{.ImageURL}}" />
<meta property="fc:frame:post_url" content="{{.PostURL}}" />
{{range .Buttons}}<meta property="fc:frame:button:{{.Index}}" content="{{.Label}}" />
<meta property="fc:frame:button:{{.Index}}:action" content="{{.Action}}" />
{{if .Target}}<meta property="fc:frame:button:{{.Index}}:target" content="{{.Target}}" />
{{end}}{{end}}<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
</body>
</html>
`))

type frameButton struct {
	Index  int
	Label  string
	Action string
	Target string
}

type frameView struct {
	Version  string
	Title    string
	ImageURL string
	PostURL  string
	Buttons  []frameButton
}

// RenderFrameHTML turns a screen into the meta-tag document the frame
// client consumes. Button positions are 1-based in document order; the
// template escapes titles and URLs for attribute context.
func RenderFrameHTML(screen models.ScreenDescriptor) string {
	buttons := screen.Buttons
	if len(buttons) > maxButtons {
		buttons = buttons[:maxButtons]
	}

	view := frameView{
		Version:  frameVersion,
		Title:    screen.Title,
		ImageURL: screen.ImageURL,
		PostURL:  screen.PostURL,
	}
	for i, b := range buttons {
		view.Buttons = append(view.Buttons, frameButton{
			Index:  i + 1,
			Label:  b.Label,
			Action: b.Action,
			Target: b.Target,
		})
	}

	var buf bytes.Buffer
	_ = frameTmpl.Execute(&buf, view)
	return buf.String()
}

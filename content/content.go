// Package content defines the payload kinds understood by the rileyviewer
// server and classifies arbitrary plot-like values into them.
//
// A Payload carries exactly one kind and one data string. PNG data is
// base64-encoded; every other kind is carried verbatim as UTF-8 text.
package content

import (
	"encoding/base64"
	"fmt"
)

// Kind identifies how the server interprets a payload's data.
type Kind string

// Supported payload kinds. The values are the wire-level type tags.
const (
	KindPNG    Kind = "Png"
	KindSVG    Kind = "Svg"
	KindPlotly Kind = "Plotly"
	KindVega   Kind = "Vega"
	KindHTML   Kind = "Html"
)

// Payload is the tagged encoding of one visual artifact.
type Payload struct {
	Kind Kind   `json:"type"`
	Data string `json:"data"`
}

// Message is a plot record as broadcast by the server over its websocket.
type Message struct {
	ID string `json:"id"`
	// Timestamp is unix milliseconds, sized for a JavaScript Number.
	Timestamp uint64  `json:"timestamp"`
	Content   Payload `json:"content"`
}

// NewPNG wraps raw PNG bytes, base64-encoding them for transport.
func NewPNG(raw []byte) Payload {
	return Payload{Kind: KindPNG, Data: base64.StdEncoding.EncodeToString(raw)}
}

// NewSVG wraps SVG markup.
func NewSVG(svg string) Payload {
	return Payload{Kind: KindSVG, Data: svg}
}

// NewPlotlyJSON wraps an opaque Plotly figure JSON string.
func NewPlotlyJSON(payload string) Payload {
	return Payload{Kind: KindPlotly, Data: payload}
}

// NewVegaJSON wraps an opaque Vega/Vega-Lite spec JSON string.
func NewVegaJSON(payload string) Payload {
	return Payload{Kind: KindVega, Data: payload}
}

// NewHTML wraps embeddable HTML markup.
func NewHTML(html string) Payload {
	return Payload{Kind: KindHTML, Data: html}
}

// UnsupportedContentError reports that Classify found no capability match.
// TypeName is the concrete Go type of the rejected value.
type UnsupportedContentError struct {
	TypeName string
}

func (e UnsupportedContentError) Error() string {
	return fmt.Sprintf("don't know how to send object of type %s", e.TypeName)
}

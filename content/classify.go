package content

import (
	"bytes"
	"fmt"
	"io"
)

// Format selects the wire encoding for rendered figures.
type Format string

// Supported figure render formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Animation is implemented by multi-frame values that render themselves to
// an interactive HTML representation.
type Animation interface {
	AnimationHTML() (string, error)
}

// Figure is a renderable drawing surface. Render writes the figure to w in
// the requested format. Close frees the underlying drawing resources and may
// be called at most once.
type Figure interface {
	Render(w io.Writer, format Format) error
	Close() error
}

// Grid is a collection of sub-plots sharing one canvas, such as a facet
// grid. SharedFigure returns that canvas.
type Grid interface {
	SharedFigure() Figure
}

// FigureProvider is implemented by values that carry an associated Figure
// without being one themselves.
type FigureProvider interface {
	Figure() Figure
}

// PlotlyMarshaler is implemented by values from an interactive-charting
// ecosystem that serialize to Plotly figure JSON.
type PlotlyMarshaler interface {
	MarshalPlotlyJSON() ([]byte, error)
}

// VegaMarshaler is implemented by values from a declarative-grammar charting
// ecosystem that serialize to a Vega/Vega-Lite spec.
type VegaMarshaler interface {
	MarshalVegaJSON() ([]byte, error)
}

// HTMLRenderer is implemented by values that render to embeddable markup.
type HTMLRenderer interface {
	RenderHTML() (string, error)
}

// Classify probes v for the supported capabilities in fixed precedence order
// and produces the matching payload. The order matters: an animation may also
// expose a figure surface, and must be caught first so it is sent as HTML
// rather than flattened to a single frame.
//
// format selects the encoding used when v resolves to a Figure; the zero
// value means FormatSVG.
func Classify(v any, format Format) (Payload, error) {
	if format == "" {
		format = FormatSVG
	}

	switch obj := v.(type) {
	case Animation:
		html, err := obj.AnimationHTML()
		if err != nil {
			return Payload{}, fmt.Errorf("rendering animation: %w", err)
		}
		return NewHTML(html), nil

	case Grid:
		return renderFigure(obj.SharedFigure(), format)

	case FigureProvider:
		return renderFigure(obj.Figure(), format)

	case Figure:
		return renderFigure(obj, format)

	case PlotlyMarshaler:
		data, err := obj.MarshalPlotlyJSON()
		if err != nil {
			return Payload{}, fmt.Errorf("marshaling plotly figure: %w", err)
		}
		return NewPlotlyJSON(string(data)), nil

	case VegaMarshaler:
		data, err := obj.MarshalVegaJSON()
		if err != nil {
			return Payload{}, fmt.Errorf("marshaling vega spec: %w", err)
		}
		return NewVegaJSON(string(data)), nil

	case HTMLRenderer:
		html, err := obj.RenderHTML()
		if err != nil {
			return Payload{}, fmt.Errorf("rendering html: %w", err)
		}
		return NewHTML(html), nil
	}

	return Payload{}, UnsupportedContentError{TypeName: fmt.Sprintf("%T", v)}
}

// renderFigure encodes fig in the requested format and closes it afterwards.
func renderFigure(fig Figure, format Format) (Payload, error) {
	if fig == nil {
		return Payload{}, UnsupportedContentError{TypeName: "<nil figure>"}
	}
	defer fig.Close()

	var buf bytes.Buffer
	if err := fig.Render(&buf, format); err != nil {
		return Payload{}, fmt.Errorf("rendering figure: %w", err)
	}

	if format == FormatPNG {
		return NewPNG(buf.Bytes()), nil
	}
	return NewSVG(buf.String()), nil
}

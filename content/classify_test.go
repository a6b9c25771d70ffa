package content

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFigure implements Figure with fixed output per format.
type fakeFigure struct {
	png    []byte
	svg    string
	err    error
	closed int
}

func (f *fakeFigure) Render(w io.Writer, format Format) error {
	if f.err != nil {
		return f.err
	}
	if format == FormatPNG {
		_, err := w.Write(f.png)
		return err
	}
	_, err := io.WriteString(w, f.svg)
	return err
}

func (f *fakeFigure) Close() error {
	f.closed++
	return nil
}

type fakeGrid struct {
	fig *fakeFigure
}

func (g *fakeGrid) SharedFigure() Figure { return g.fig }

type fakeProvider struct {
	fig *fakeFigure
}

func (p *fakeProvider) Figure() Figure { return p.fig }

type fakePlotly struct{ payload string }

func (p *fakePlotly) MarshalPlotlyJSON() ([]byte, error) { return []byte(p.payload), nil }

type fakeVega struct{ payload string }

func (v *fakeVega) MarshalVegaJSON() ([]byte, error) { return []byte(v.payload), nil }

type fakeHTML struct{ markup string }

func (h *fakeHTML) RenderHTML() (string, error) { return h.markup, nil }

// animatedFigure exposes both the animation and figure capabilities, like a
// matplotlib FuncAnimation that also carries a canvas.
type animatedFigure struct {
	fakeFigure
}

func (a *animatedFigure) AnimationHTML() (string, error) {
	return "<video>frames</video>", nil
}

func TestClassify_FigureDefaultsToSVG(t *testing.T) {
	t.Parallel()

	fig := &fakeFigure{svg: "<svg/>"}
	p, err := Classify(fig, "")
	require.NoError(t, err)

	assert.Equal(t, KindSVG, p.Kind)
	assert.Equal(t, "<svg/>", p.Data)
	assert.Equal(t, 1, fig.closed, "figure should be closed after encoding")
}

func TestClassify_FigurePNGIsBase64(t *testing.T) {
	t.Parallel()

	raw := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	fig := &fakeFigure{png: raw}

	p, err := Classify(fig, FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, KindPNG, p.Kind)

	decoded, err := base64.StdEncoding.DecodeString(p.Data)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded, "base64 round-trip should return original bytes")
}

func TestClassify_AnimationBeatsFigure(t *testing.T) {
	t.Parallel()

	anim := &animatedFigure{fakeFigure{svg: "<svg/>"}}
	p, err := Classify(anim, FormatPNG)
	require.NoError(t, err)

	assert.Equal(t, KindHTML, p.Kind)
	assert.Equal(t, "<video>frames</video>", p.Data)
	assert.Equal(t, 0, anim.closed, "animation path must not touch the figure surface")
}

func TestClassify_GridResolvesSharedFigure(t *testing.T) {
	t.Parallel()

	fig := &fakeFigure{svg: "<svg>grid</svg>"}
	p, err := Classify(&fakeGrid{fig: fig}, FormatSVG)
	require.NoError(t, err)

	assert.Equal(t, KindSVG, p.Kind)
	assert.Equal(t, "<svg>grid</svg>", p.Data)
	assert.Equal(t, 1, fig.closed)
}

func TestClassify_ProviderResolvesFigure(t *testing.T) {
	t.Parallel()

	fig := &fakeFigure{svg: "<svg>prov</svg>"}
	p, err := Classify(&fakeProvider{fig: fig}, "")
	require.NoError(t, err)

	assert.Equal(t, KindSVG, p.Kind)
	assert.Equal(t, 1, fig.closed)
}

func TestClassify_Plotly(t *testing.T) {
	t.Parallel()

	p, err := Classify(&fakePlotly{payload: `{"data":[]}`}, "")
	require.NoError(t, err)
	assert.Equal(t, KindPlotly, p.Kind)
	assert.Equal(t, `{"data":[]}`, p.Data)
}

func TestClassify_Vega(t *testing.T) {
	t.Parallel()

	p, err := Classify(&fakeVega{payload: `{"mark":"bar"}`}, "")
	require.NoError(t, err)
	assert.Equal(t, KindVega, p.Kind)
	assert.Equal(t, `{"mark":"bar"}`, p.Data)
}

func TestClassify_HTML(t *testing.T) {
	t.Parallel()

	p, err := Classify(&fakeHTML{markup: "<b>hi</b>"}, "")
	require.NoError(t, err)
	assert.Equal(t, KindHTML, p.Kind)
	assert.Equal(t, "<b>hi</b>", p.Data)
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	v := &fakePlotly{payload: `{"data":[1,2,3]}`}
	first, err := Classify(v, "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := Classify(v, "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassify_RenderErrorStillCloses(t *testing.T) {
	t.Parallel()

	fig := &fakeFigure{err: errors.New("render boom")}
	_, err := Classify(fig, "")
	require.Error(t, err)
	assert.Equal(t, 1, fig.closed)
}

func TestClassify_UnsupportedNamesType(t *testing.T) {
	t.Parallel()

	_, err := Classify(42, "")
	require.Error(t, err)

	var unsupported UnsupportedContentError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "int", unsupported.TypeName)
	assert.Contains(t, err.Error(), "int")
}

func TestPayload_WireFraming(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewSVG("<svg/>"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Svg","data":"<svg/>"}`, string(data))
}

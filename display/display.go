// Package display hands conversion results to the surface that shows them.
// The converter never touches a surface itself; callers apply a Display
// only after a successful conversion and leave the surface untouched on error.
package display

import (
	"context"
	"html/template"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

// ElementName is the name of the element that shows the output image.
const ElementName = "output"

// Display is everything a surface needs to render one output image.
type Display struct {
	Mime    core.MimeType `json:"mime"`
	Width   uint32        `json:"width"`
	Height  uint32        `json:"height"`
	DataURI string        `json:"data_uri"`
	AltText string        `json:"alt"`
}

// Surface renders a Display.
type Surface interface {
	Show(ctx context.Context, d Display) error
}

// FromResult pairs a conversion result with the accessible text to show.
func FromResult(res *core.ConversionResult, alt string) Display {
	return Display{
		Mime:    res.Mime,
		Width:   res.Width,
		Height:  res.Height,
		DataURI: res.DataURI,
		AltText: alt,
	}
}

var imgTmpl = template.Must(template.New("img").Parse(
	`<img name="{{.Name}}" width="{{.Width}}" height="{{.Height}}" alt="{{.Alt}}" src="{{.Src}}">` + "\n"))

// HTML writes each Display as an <img> element.
type HTML struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHTML returns a surface writing to w.
func NewHTML(w io.Writer) *HTML { return &HTML{w: w} }

func (h *HTML) Show(ctx context.Context, d Display) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(apperrors.KindPipeline, "display.html", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	// template.URL, or html/template rejects the data: scheme.
	err := imgTmpl.Execute(h.w, struct {
		Name          string
		Width, Height uint32
		Alt           string
		Src           template.URL
	}{ElementName, d.Width, d.Height, d.AltText, template.URL(d.DataURI)})
	return apperrors.Wrap(apperrors.KindEncode, "display.html", err)
}

// JSON writes each Display as one JSON object per line.
type JSON struct {
	mu  sync.Mutex
	enc *jsoniter.Encoder
}

// NewJSON returns a surface writing to w.
func NewJSON(w io.Writer) *JSON {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSON{enc: enc}
}

func (j *JSON) Show(ctx context.Context, d Display) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(apperrors.KindPipeline, "display.json", err)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return apperrors.Wrap(apperrors.KindEncode, "display.json", j.enc.Encode(d))
}

var (
	_ Surface = (*HTML)(nil)
	_ Surface = (*JSON)(nil)
)

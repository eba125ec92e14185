package pipeline_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skryldev/grayscaler/adapters/decoder"
	"github.com/Skryldev/grayscaler/adapters/encoder"
	"github.com/Skryldev/grayscaler/b64"
	"github.com/Skryldev/grayscaler/config"
	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
	"github.com/Skryldev/grayscaler/pipeline"
)

func newRegistry() *core.DefaultRegistry {
	reg := core.NewRegistry()
	reg.RegisterDecoder(core.FormatPNG, decoder.NewPNG())
	reg.RegisterDecoder(core.FormatJPEG, decoder.NewJPEG())
	reg.RegisterEncoder(core.FormatPNG, encoder.NewPNG(""))
	reg.RegisterEncoder(core.FormatJPEG, encoder.NewJPEG(0))
	return reg
}

func TestGrayscale_Luma(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	src.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 10})
	src.SetNRGBA(3, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})

	out := pipeline.Grayscale(src)
	assert.Equal(t, color.NRGBA{R: 76, G: 76, B: 76, A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 150, G: 150, B: 150, A: 255}, out.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 29, G: 29, B: 29, A: 10}, out.NRGBAAt(2, 0))
	assert.Equal(t, uint8(0), out.NRGBAAt(3, 0).A)
	assert.Equal(t, src.Bounds(), out.Bounds())
}

func TestGrayscale_Idempotent(t *testing.T) {
	f := func(pix [16]byte) bool {
		src := &image.NRGBA{Pix: pix[:], Stride: 8, Rect: image.Rect(0, 0, 2, 2)}
		once := pipeline.Grayscale(src)
		twice := pipeline.Grayscale(once)
		return bytes.Equal(once.Pix, twice.Pix)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestParseInputStep(t *testing.T) {
	s := &pipeline.ParseInputStep{}
	out, err := s.Execute(context.Background(), &core.ImageData{Input: "data:image/jpeg;charset=x;base64,AAAA"})
	require.NoError(t, err)
	assert.True(t, out.HasDeclaredMime)
	assert.Equal(t, "image/jpeg", out.DeclaredMime)
	assert.Equal(t, []string{"charset=x", "base64"}, out.Params)
	assert.Equal(t, "AAAA", out.Payload)

	_, err = s.Execute(context.Background(), &core.ImageData{Input: "data:image/png"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindMalformedDataURI))
}

func TestResolveFormatStep(t *testing.T) {
	s := &pipeline.ResolveFormatStep{}
	out, err := s.Execute(context.Background(), &core.ImageData{})
	require.NoError(t, err)
	assert.Equal(t, core.FormatPNG, out.Format)

	_, err = s.Execute(context.Background(), &core.ImageData{DeclaredMime: "image/webp", HasDeclaredMime: true})
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
}

func TestDecodeImageStep_NoDecoder(t *testing.T) {
	s := &pipeline.DecodeImageStep{Registry: core.NewRegistry()}
	_, err := s.Execute(context.Background(), &core.ImageData{Format: core.FormatPNG, Data: []byte{1}})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnsupportedFormat))
}

func TestEncodeImageStep_NoEncoder(t *testing.T) {
	s := &pipeline.EncodeImageStep{Registry: core.NewRegistry()}
	_, err := s.Execute(context.Background(), &core.ImageData{Image: image.NewNRGBA(image.Rect(0, 0, 1, 1))})
	assert.True(t, apperrors.IsKind(err, apperrors.KindEncode))
}

func TestTransformStep_NoImage(t *testing.T) {
	_, err := (&pipeline.TransformStep{}).Execute(context.Background(), &core.ImageData{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindPipeline))
}

func TestStandard_EndToEnd(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	src.SetNRGBA(4, 2, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	p := pipeline.New().Use(pipeline.Standard(newRegistry(), config.Default())...)
	out, timings, err := p.Run(context.Background(), &core.ImageData{Input: b64.Encode(buf.Bytes())})
	require.NoError(t, err)

	assert.Len(t, timings, 8)
	assert.Equal(t, 5, out.Meta.Width)
	assert.Equal(t, 3, out.Meta.Height)
	assert.Equal(t, core.ColorSpaceGray, out.Meta.ColorSpace)
	assert.Equal(t, core.FormatPNG, out.OutputFormat)
	assert.Equal(t, "data:image/png;base64,"+out.Encoded, out.DataURI)
	assert.Equal(t, int64(len(out.Data)), out.Meta.SizeBytes)
	assert.Equal(t, color.NRGBA{R: 76, G: 76, B: 76, A: 255}, out.Image.(*image.NRGBA).NRGBAAt(4, 2))
}

func TestStandard_PreserveInputMime(t *testing.T) {
	cfg := config.Default()
	cfg.PreserveInputMime = true
	s := pipeline.Standard(newRegistry(), cfg)[5]
	require.Equal(t, "encode_image", s.Name())

	out, err := s.Execute(context.Background(), &core.ImageData{
		Format: core.FormatJPEG,
		Image:  image.NewNRGBA(image.Rect(0, 0, 2, 2)),
	})
	require.NoError(t, err)
	assert.Equal(t, core.FormatJPEG, out.OutputFormat)
}

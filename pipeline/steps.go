package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/Skryldev/grayscaler/b64"
	"github.com/Skryldev/grayscaler/config"
	"github.com/Skryldev/grayscaler/core"
	"github.com/Skryldev/grayscaler/datauri"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

// Standard returns the conversion steps in state-machine order:
// parse_input → resolve_format → decode_payload → decode_image → transform →
// encode_image → encode_payload → build_output.
func Standard(reg core.Registry, cfg config.Config) []core.Step {
	return []core.Step{
		&ParseInputStep{},
		&ResolveFormatStep{},
		&DecodePayloadStep{},
		&DecodeImageStep{Registry: reg},
		&TransformStep{},
		&EncodeImageStep{
			Registry:          reg,
			Options:           core.EncodeOptions{Quality: cfg.JPEGQuality, Compression: cfg.PNGCompression},
			PreserveInputMime: cfg.PreserveInputMime,
		},
		&EncodePayloadStep{},
		&BuildOutputStep{},
	}
}

// ── ParseInput ────────────────────────────────────────────────────────────────

// ParseInputStep splits the input into declared mime and base64 payload.
type ParseInputStep struct{}

func (s *ParseInputStep) Name() string { return "parse_input" }

func (s *ParseInputStep) Execute(_ context.Context, img *core.ImageData) (*core.ImageData, error) {
	parsed, err := datauri.Parse(img.Input)
	if err != nil {
		return nil, err
	}
	out := *img
	out.DeclaredMime = parsed.DeclaredMime
	out.HasDeclaredMime = parsed.HasMime
	out.Params = parsed.Params
	out.Payload = parsed.Payload
	return &out, nil
}

// ── ResolveFormat ─────────────────────────────────────────────────────────────

// ResolveFormatStep maps the declared mime onto a container format.
type ResolveFormatStep struct{}

func (s *ResolveFormatStep) Name() string { return "resolve_format" }

func (s *ResolveFormatStep) Execute(_ context.Context, img *core.ImageData) (*core.ImageData, error) {
	f, err := core.ResolveFormat(img.DeclaredMime, img.HasDeclaredMime)
	if err != nil {
		return nil, err
	}
	out := *img
	out.Format = f
	return &out, nil
}

// ── DecodePayload ─────────────────────────────────────────────────────────────

// DecodePayloadStep base64-decodes the payload into container bytes.
type DecodePayloadStep struct{}

func (s *DecodePayloadStep) Name() string { return "decode_payload" }

func (s *DecodePayloadStep) Execute(_ context.Context, img *core.ImageData) (*core.ImageData, error) {
	data, err := b64.Decode(img.Payload)
	if err != nil {
		return nil, err
	}
	out := *img
	out.Data = data
	return &out, nil
}

// ── DecodeImage ───────────────────────────────────────────────────────────────

// DecodeImageStep decodes img.Data with the decoder registered for img.Format.
type DecodeImageStep struct {
	Registry core.Registry
}

func (s *DecodeImageStep) Name() string { return "decode_image" }

func (s *DecodeImageStep) Execute(ctx context.Context, img *core.ImageData) (*core.ImageData, error) {
	if len(img.Data) == 0 {
		return nil, apperrors.New(apperrors.KindDecode, s.Name(), apperrors.ErrEmptyInput)
	}
	dec, ok := s.Registry.DecoderFor(img.Format)
	if !ok {
		return nil, apperrors.New(apperrors.KindUnsupportedFormat, s.Name(),
			fmt.Errorf("%w: no decoder for %s", apperrors.ErrUnsupportedFormat, img.Format))
	}

	decoded, err := dec.Decode(ctx, img.Data)
	if err != nil {
		return nil, err
	}

	out := *img
	out.Image = decoded.Image
	out.Meta = decoded.Meta
	return &out, nil
}

// ── Transform ─────────────────────────────────────────────────────────────────

// TransformStep replaces the pixel grid with its grayscale equivalent.
type TransformStep struct{}

func (s *TransformStep) Name() string { return "transform" }

func (s *TransformStep) Execute(_ context.Context, img *core.ImageData) (*core.ImageData, error) {
	if img.Image == nil {
		return nil, apperrors.New(apperrors.KindPipeline, s.Name(), apperrors.ErrEmptyInput)
	}
	out := *img
	out.Image = Grayscale(img.Image)
	out.Meta.ColorSpace = core.ColorSpaceGray
	return &out, nil
}

// Grayscale returns a new image of the same size whose R, G and B channels all
// hold the BT.601 luma of the source pixel (0.299R + 0.587G + 0.114B, rounded).
// Alpha is kept.  Applying it to its own output is a no-op.
func Grayscale(src image.Image) *image.NRGBA {
	return imaging.Grayscale(src)
}

// ── EncodeImage ───────────────────────────────────────────────────────────────

// EncodeImageStep serialises the pixel grid.  Output is PNG unless
// PreserveInputMime is set, in which case the input container is reused.
type EncodeImageStep struct {
	Registry          core.Registry
	Options           core.EncodeOptions
	PreserveInputMime bool
}

func (s *EncodeImageStep) Name() string { return "encode_image" }

func (s *EncodeImageStep) Execute(ctx context.Context, img *core.ImageData) (*core.ImageData, error) {
	target := core.FormatPNG
	if s.PreserveInputMime && img.Format != "" {
		target = img.Format
	}

	enc, ok := s.Registry.EncoderFor(target)
	if !ok {
		return nil, apperrors.New(apperrors.KindEncode, s.Name(),
			fmt.Errorf("%w: no encoder for %s", apperrors.ErrUnsupportedFormat, target))
	}

	data, err := enc.Encode(ctx, img, s.Options)
	if err != nil {
		return nil, err
	}

	out := *img
	out.Data = data
	out.OutputFormat = target
	out.Meta.SizeBytes = int64(len(data))
	return &out, nil
}

// ── EncodePayload ─────────────────────────────────────────────────────────────

// EncodePayloadStep base64-encodes the output container bytes.
type EncodePayloadStep struct{}

func (s *EncodePayloadStep) Name() string { return "encode_payload" }

func (s *EncodePayloadStep) Execute(_ context.Context, img *core.ImageData) (*core.ImageData, error) {
	out := *img
	out.Encoded = b64.Encode(img.Data)
	return &out, nil
}

// ── BuildOutput ───────────────────────────────────────────────────────────────

// BuildOutputStep composes the output data URI.
type BuildOutputStep struct{}

func (s *BuildOutputStep) Name() string { return "build_output" }

func (s *BuildOutputStep) Execute(_ context.Context, img *core.ImageData) (*core.ImageData, error) {
	out := *img
	out.DataURI = datauri.Build(string(img.OutputFormat.Mime()), img.Encoded)
	return &out, nil
}

// compile-time interface checks
var (
	_ core.Step = (*ParseInputStep)(nil)
	_ core.Step = (*ResolveFormatStep)(nil)
	_ core.Step = (*DecodePayloadStep)(nil)
	_ core.Step = (*DecodeImageStep)(nil)
	_ core.Step = (*TransformStep)(nil)
	_ core.Step = (*EncodeImageStep)(nil)
	_ core.Step = (*EncodePayloadStep)(nil)
	_ core.Step = (*BuildOutputStep)(nil)
)

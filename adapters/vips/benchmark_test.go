//go:build vips

// Run with: go test -tags vips -bench . ./adapters/vips/
// Requires libvips and its headers to be installed.
package vips_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"testing"

	"github.com/Skryldev/grayscaler"
	"github.com/Skryldev/grayscaler/adapters/vips"
	"github.com/Skryldev/grayscaler/b64"
	"github.com/Skryldev/grayscaler/core"
	"github.com/Skryldev/grayscaler/datauri"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

func makeJPEGURI(tb testing.TB, w, h int) string {
	tb.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 92}); err != nil {
		tb.Fatalf("encode test jpeg: %v", err)
	}
	return datauri.Build("image/jpeg", b64.Encode(buf.Bytes()))
}

// libvips cannot be restarted after Shutdown, so one backend serves the
// whole package.
var backend *vips.Backend

func TestMain(m *testing.M) {
	backend = vips.NewBackend(vips.BackendConfig{})
	code := m.Run()
	backend.Shutdown()
	os.Exit(code)
}

func newConverters(tb testing.TB) (stdlib, withVips *grayscaler.Converter) {
	tb.Helper()
	stdlib = grayscaler.New(grayscaler.DefaultConfig())
	withVips = grayscaler.New(grayscaler.DefaultConfig())
	vips.RegisterVipsBackend(withVips.Inner().Registry(), backend)
	return stdlib, withVips
}

func TestVipsDecode_MatchesStdlib(t *testing.T) {
	stdlib, withVips := newConverters(t)

	in := makeJPEGURI(t, 64, 48)
	want, err := stdlib.Convert(context.Background(), in)
	if err != nil {
		t.Fatalf("stdlib: %v", err)
	}
	got, err := withVips.Convert(context.Background(), in)
	if err != nil {
		t.Fatalf("vips: %v", err)
	}
	if got.Width != want.Width || got.Height != want.Height {
		t.Errorf("dimensions: vips %dx%d, stdlib %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
}

func TestVipsDecode_Mismatch(t *testing.T) {
	_, withVips := newConverters(t)

	jpegURI := makeJPEGURI(t, 8, 8)
	p, _ := datauri.Parse(jpegURI)
	_, err := withVips.Convert(context.Background(), "data:image/png;base64,"+p.Payload)
	if !apperrors.IsKind(err, apperrors.KindDecode) {
		t.Fatalf("want decode error, got %v", err)
	}
}

func BenchmarkConvert_Stdlib_1920x1080(b *testing.B) {
	in := makeJPEGURI(b, 1920, 1080)
	stdlib, _ := newConverters(b)

	b.ReportAllocs()
	b.SetBytes(int64(len(in)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := stdlib.Convert(context.Background(), in); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConvert_Vips_1920x1080(b *testing.B) {
	in := makeJPEGURI(b, 1920, 1080)
	_, withVips := newConverters(b)

	b.ReportAllocs()
	b.SetBytes(int64(len(in)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := withVips.Convert(context.Background(), in); err != nil {
			b.Fatal(err)
		}
	}
}

var _ core.Decoder = (*vips.Decoder)(nil)

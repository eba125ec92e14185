package display_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skryldev/grayscaler/core"
	"github.com/Skryldev/grayscaler/display"
)

func TestFromResult(t *testing.T) {
	res := &core.ConversionResult{Mime: core.MimePNG, Width: 24, Height: 12, DataURI: "data:image/png;base64,AAAA"}
	d := display.FromResult(res, "gray")

	assert.Equal(t, display.Display{
		Mime: core.MimePNG, Width: 24, Height: 12, DataURI: "data:image/png;base64,AAAA", AltText: "gray",
	}, d)
}

func TestHTML_Show(t *testing.T) {
	var buf bytes.Buffer
	surface := display.NewHTML(&buf)

	err := surface.Show(context.Background(), display.Display{
		Mime: core.MimePNG, Width: 24, Height: 24,
		DataURI: "data:image/png;base64,iVBO+/w==",
		AltText: `a "quoted" <alt>`,
	})
	require.NoError(t, err)

	assert.Equal(t,
		`<img name="output" width="24" height="24" alt="a &#34;quoted&#34; &lt;alt&gt;" src="data:image/png;base64,iVBO&#43;/w==">`+"\n",
		buf.String())
}

func TestHTML_ShowCancelled(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, display.NewHTML(&buf).Show(ctx, display.Display{}), context.Canceled)
	assert.Zero(t, buf.Len(), "surface untouched on error")
}

func TestJSON_Show(t *testing.T) {
	var buf bytes.Buffer
	surface := display.NewJSON(&buf)

	d := display.Display{Mime: core.MimeJPEG, Width: 3, Height: 2, DataURI: "data:image/jpeg;base64,/9j/", AltText: "<x>"}
	require.NoError(t, surface.Show(context.Background(), d))
	require.NoError(t, surface.Show(context.Background(), d))

	line := `{"mime":"image/jpeg","width":3,"height":2,"data_uri":"data:image/jpeg;base64,/9j/","alt":"<x>"}` + "\n"
	assert.Equal(t, line+line, buf.String())
}

package datauri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skryldev/grayscaler/datauri"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

func TestParse_BarePayload(t *testing.T) {
	for _, in := range []string{"", "xyz", "iVBORw0KGgo=", "DATA:image/png;base64,AAAA", " data:image/png;base64,AA"} {
		p, err := datauri.Parse(in)
		require.NoError(t, err, in)
		assert.False(t, p.HasMime, in)
		assert.Empty(t, p.DeclaredMime, in)
		assert.Equal(t, in, p.Payload, in)
	}
}

func TestParse_DataURI(t *testing.T) {
	tests := []struct {
		in      string
		mime    string
		params  []string
		payload string
	}{
		{"data:image/png;base64,iVBOR==", "image/png", []string{"base64"}, "iVBOR=="},
		{"data:image/jpeg;base64,/9j/", "image/jpeg", []string{"base64"}, "/9j/"},
		{"data:image/png;charset=x;base64,AA,BB", "image/png", []string{"charset=x", "base64"}, "AA,BB"},
		{"data:image/png,AAAA", "image/png,AAAA", nil, "AAAA"},
		{"data:image/png,AA;BB", "image/png,AA", nil, "AA;BB"},
		{"data:;base64,AAAA", "", []string{"base64"}, "AAAA"},
		{"data:image/gif;base64,", "image/gif", []string{"base64"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			p, err := datauri.Parse(tc.in)
			require.NoError(t, err)
			assert.True(t, p.HasMime)
			assert.Equal(t, tc.mime, p.DeclaredMime)
			assert.Equal(t, tc.params, p.Params)
			assert.Equal(t, tc.payload, p.Payload)
		})
	}
}

func TestParse_MissingComma(t *testing.T) {
	for _, in := range []string{"data:", "data:image/png", "data:image/png;base64"} {
		_, err := datauri.Parse(in)
		require.Error(t, err, in)
		assert.True(t, apperrors.IsKind(err, apperrors.KindMalformedDataURI), in)
		assert.ErrorIs(t, err, apperrors.ErrMissingComma)
	}
}

func TestBuild(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,xyz", datauri.Build("image/png", "xyz"))
	assert.Equal(t, "data:;base64,", datauri.Build("", ""))
}

func TestBuildParse(t *testing.T) {
	p, err := datauri.Parse(datauri.Build("image/jpeg", "QUJD"))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", p.DeclaredMime)
	assert.Equal(t, "QUJD", p.Payload)
}

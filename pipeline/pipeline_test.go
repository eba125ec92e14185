package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
	"github.com/Skryldev/grayscaler/pipeline"
)

// recordStep appends its name to DeclaredMime so tests can see the order in
// which steps ran.
type recordStep struct {
	name string
	err  error
}

func (s *recordStep) Name() string { return s.name }

func (s *recordStep) Execute(_ context.Context, img *core.ImageData) (*core.ImageData, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *img
	out.DeclaredMime += s.name
	return &out, nil
}

type countingHook struct {
	before, after []string
	errs          []error
}

func (h *countingHook) BeforeStep(_ context.Context, name string, _ *core.ImageData) {
	h.before = append(h.before, name)
}

func (h *countingHook) AfterStep(_ context.Context, name string, _ *core.ImageData, _ time.Duration, err error) {
	h.after = append(h.after, name)
	h.errs = append(h.errs, err)
}

func TestRun_Order(t *testing.T) {
	p := pipeline.New().Use(&recordStep{name: "a"}, &recordStep{name: "b"}, &recordStep{name: "c"})

	in := &core.ImageData{}
	out, timings, err := p.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "abc", out.DeclaredMime)
	assert.Empty(t, in.DeclaredMime, "input must not be mutated")
	assert.Len(t, timings, 3)
	assert.Equal(t, []string{"a", "b", "c"}, p.Steps())
}

func TestRun_ShortCircuit(t *testing.T) {
	boom := apperrors.New(apperrors.KindDecode, "b", errors.New("boom"))
	hook := &countingHook{}
	p := pipeline.New().
		Use(&recordStep{name: "a"}, &recordStep{name: "b", err: boom}, &recordStep{name: "c"}).
		AddHook(hook)

	out, _, err := p.Run(context.Background(), &core.ImageData{})
	assert.Nil(t, out)
	assert.Same(t, boom, err, "step error is returned unchanged")
	assert.Equal(t, []string{"a", "b"}, hook.before)
	assert.Equal(t, []string{"a", "b"}, hook.after)
	assert.NoError(t, hook.errs[0])
	assert.Same(t, boom, hook.errs[1])
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := pipeline.New().Use(&recordStep{name: "a"}).Run(ctx, &core.ImageData{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindPipeline))
	assert.ErrorIs(t, err, context.Canceled)
}

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"remapper/internal/logging"
)

type recorder struct {
	total int
	steps []int
}

func (r *recorder) Init(total int, _ string) { r.total = total }
func (r *recorder) Step(n int, _ string)     { r.steps = append(r.steps, n) }

func TestStepCounter(t *testing.T) {
	rec := &recorder{}
	counter := NewStepCounter(rec, 3, "reading")

	counter.Step("one")
	counter.Step("two")
	assert.Panics(t, counter.Done, "too few steps")

	counter.Step("three")
	assert.NotPanics(t, counter.Done)
	assert.Panics(t, func() { counter.Step("four") }, "too many steps")

	assert.Equal(t, 3, rec.total)
	assert.Equal(t, []int{1, 2, 3}, rec.steps)
}

func TestStepCounterNilProgress(t *testing.T) {
	counter := NewStepCounter(nil, 1, "writing")
	counter.Step("only")
	assert.NotPanics(t, counter.Done)
}

func TestLogProgress(t *testing.T) {
	p := &LogProgress{Logger: logging.NewDiscardLogger()}
	counter := NewStepCounter(p, 1, "reading")
	counter.Step("done")
	counter.Done()

	assert.Equal(t, 1, p.total)
}

func TestOptionsValidators(t *testing.T) {
	assert.NoError(t, NotBlank("x"))
	assert.Error(t, NotBlank("\t"))

	oneOf := OneOf("a", "b")
	assert.NoError(t, oneOf("b"))
	assert.EqualError(t, oneOf("c"), "value must be one of a, b")

	opts := Options{"k": "v"}
	v, ok := opts.Lookup("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, "", opts.Get("missing"))
}

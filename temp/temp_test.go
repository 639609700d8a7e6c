package temp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTempsAreSequential(t *testing.T) {
	f := NewFactory()

	t0 := f.NewTemp()
	t1 := f.NewTemp()

	assert.Equal(t, "t0", t0.String())
	assert.Equal(t, "t1", t1.String())
	assert.NotEqual(t, t0, t1)
}

func TestLabelsAreSequential(t *testing.T) {
	f := NewFactory()

	assert.Equal(t, "L0", f.NewLabel().Name())
	assert.Equal(t, "L1", f.NewLabel().Name())
}

func TestNamedLabelsCompareByName(t *testing.T) {
	f := NewFactory()

	a := f.NamedLabel("print")
	b := f.NamedLabel("print")

	assert.Equal(t, a, b)
	assert.Equal(t, "print", a.String())

	// A generated label and a named label with the same text are the same
	// label.
	generated := f.NewLabel()
	assert.Equal(t, generated, f.NamedLabel(generated.Name()))
}

func TestFactoriesAreIndependent(t *testing.T) {
	a := NewFactory()
	b := NewFactory()

	a.NewTemp()
	a.NewTemp()

	// A fresh factory starts over: numbering is per job.
	assert.Equal(t, "t0", b.NewTemp().String())
}

func TestTempsAndLabelsAreMapKeys(t *testing.T) {
	f := NewFactory()

	temps := map[Temp]int{}
	t0 := f.NewTemp()
	temps[t0] = 1
	temps[f.NewTemp()] = 2
	assert.Equal(t, 1, temps[t0])

	labels := map[Label]string{}
	l0 := f.NewLabel()
	labels[l0] = "first"
	assert.Equal(t, "first", labels[l0])
}

package engine_test

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/pdfmerge/engine"
	"github.com/wudi/pdfmerge/engine/enginetest"
)

func TestRegisterAndLookup(t *testing.T) {
	fake := &enginetest.Engine{EngineName: "registry-test"}
	engine.Register(fake)

	got, err := engine.Lookup("registry-test")
	require.NoError(t, err)
	assert.Same(t, fake, got)
	assert.Contains(t, engine.Names(), "registry-test")
}

func TestRegisterPanics(t *testing.T) {
	assert.Panics(t, func() { engine.Register(nil) })

	engine.Register(&enginetest.Engine{EngineName: "dup-test"})
	assert.Panics(t, func() { engine.Register(&enginetest.Engine{EngineName: "dup-test"}) })
}

func TestLookupMissing(t *testing.T) {
	_, err := engine.Lookup("ghostscript")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrMissingDependency)
	assert.Contains(t, err.Error(), engine.ErrMsgMissingDependency)
	assert.Contains(t, err.Error(), `"ghostscript"`)
	assert.Contains(t, err.Error(), "go install")

	assert.NotContains(t, err.Error(), engine.ErrMissingDependency.Error())

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, engine.ErrCodeDependency, customErr.Code)
	name, ok := customErr.GetMetadata(engine.MetaKeyEngine)
	assert.True(t, ok)
	assert.Equal(t, "ghostscript", name)
}

func TestNamesSorted(t *testing.T) {
	engine.Register(&enginetest.Engine{EngineName: "zz-sort"})
	engine.Register(&enginetest.Engine{EngineName: "aa-sort"})
	names := engine.Names()
	assert.IsNonDecreasing(t, names)
}

func TestParseValidationMode(t *testing.T) {
	m, err := engine.ParseValidationMode("")
	require.NoError(t, err)
	assert.Equal(t, engine.ValidationRelaxed, m)

	m, err = engine.ParseValidationMode("strict")
	require.NoError(t, err)
	assert.Equal(t, engine.ValidationStrict, m)
	assert.Equal(t, "strict", m.String())

	_, err = engine.ParseValidationMode("paranoid")
	assert.Error(t, err)
}

func TestEngineErrorsWrapCause(t *testing.T) {
	cause := errors.New("xref corrupt")
	err := engine.AppendError("fake", "a.pdf", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "a.pdf")

	assert.Equal(t, engine.ErrMsgAppendFailed+" a.pdf: xref corrupt", err.Error())

	err = engine.WriteError("fake", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, engine.ErrMsgWriteFailed+": xref corrupt", err.Error())

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, engine.ErrCodeEngine, customErr.Code)
}

package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/StreamMUSE/streammuse/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "group",
			ID:       "modelX-0.25b",
		}
		assert.Equal(t, "group with ID modelX-0.25b not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("file", "a.mid")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("url", "../etc/passwd", "escapes content root")
		assert.Equal(t, "validation failed for field url: escapes content root", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad request"}
		assert.Equal(t, "validation failed: bad request", err.Error())
	})
}

func TestGrammarError(t *testing.T) {
	err := pkgerrors.NewGrammarError("offline_tem_0.8.mid", "missing prompt segment")
	assert.Contains(t, err.Error(), "offline_tem_0.8.mid")
	assert.Contains(t, err.Error(), "missing prompt segment")
	assert.True(t, pkgerrors.IsGrammarMismatch(err))
	assert.False(t, pkgerrors.IsInvalidLayout(err))

	wrapped := fmt.Errorf("skip: %w", err)
	assert.True(t, pkgerrors.IsGrammarMismatch(wrapped))
}

func TestLayoutError(t *testing.T) {
	err := pkgerrors.NewLayoutError("modelX/a.mid", 2, 5)
	assert.Equal(t, "path modelX/a.mid has 2 segments, expected 5", err.Error())
	assert.True(t, pkgerrors.IsInvalidLayout(err))
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/catalog.json", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Contains(t, err.Error(), "/data/catalog.json")
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapIO("walk", "/content", errors.New("permission denied"))
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "walk", ioErr.Operation)
		assert.Equal(t, "/content", ioErr.Path)
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	})
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.WrapResource("load", "catalog", "", errors.New("boom"))
	resErr, ok := err.(*pkgerrors.ResourceError)
	require.True(t, ok)
	assert.Equal(t, "failed to load catalog: boom", resErr.Error())

	withID := pkgerrors.NewResourceError("decode", "index", "catalog.json", errors.New("eof"))
	assert.Equal(t, "failed to decode index catalog.json: eof", withID.Error())
}

func TestParseError(t *testing.T) {
	base := errors.New("unexpected end of JSON input")
	err := pkgerrors.WrapParse("json", "catalog.json", base)
	assert.Equal(t, "parse error in json file catalog.json: unexpected end of JSON input", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("server", "port out of range", nil)
	assert.Equal(t, "configuration error in server: port out of range", err.Error())
}

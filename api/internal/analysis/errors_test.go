package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewFetchError(cause)

	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrDetection)
	assert.Equal(t, "fetch error: dial tcp: refused", err.Error())

	wrapped := fmt.Errorf("stage: %w", err)
	assert.Equal(t, KindFetch, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(cause))
}

func TestNewErrorDoesNotDoubleWrap(t *testing.T) {
	err := NewTranslationError(errors.New("x"))
	assert.Same(t, err, NewTranslationError(err))
}

func TestMalformedRequestError(t *testing.T) {
	err := NewMalformedRequestError("missing %s", "imageUrl")
	assert.ErrorIs(t, err, ErrMalformedRequest)
	assert.Equal(t, "malformed_request", KindOf(err).String())
	assert.Equal(t, "malformed request: missing imageUrl", err.Error())
}

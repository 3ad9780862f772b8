package domain

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorUnwrap(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"title": "must not be empty"}}
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "title: must not be empty")
}

func TestValidationErrorMessageIsDeterministic(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"title":       "too long",
		"description": "too long",
	}}
	assert.Equal(t, "validation error: description: too long; title: too long", err.Error())
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := &StorageError{Op: "create", Err: cause}

	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(err, cause), "cause must stay reachable for logging")
	assert.Contains(t, err.Error(), "create")
}

func TestTaxonomyIsDisjoint(t *testing.T) {
	storage := &StorageError{Op: "get", Err: io.EOF}
	validation := &ValidationError{Fields: map[string]string{"title": "x"}}

	require.False(t, errors.Is(storage, ErrNotFound))
	require.False(t, errors.Is(storage, ErrValidation))
	require.False(t, errors.Is(validation, ErrNotFound))
	require.False(t, errors.Is(validation, ErrUnavailable))
	require.False(t, errors.Is(ErrNotFound, ErrUnavailable))
}

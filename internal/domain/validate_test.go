package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTodoInputValidate(t *testing.T) {
	t.Run("valid input is trimmed", func(t *testing.T) {
		in := TodoInput{Title: "  Buy milk  "}
		require.NoError(t, in.Validate())
		assert.Equal(t, "Buy milk", in.Title)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		in := TodoInput{Title: ""}
		err := in.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("whitespace-only title rejected", func(t *testing.T) {
		in := TodoInput{Title: "   "}
		err := in.Validate()
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "title")
	})

	t.Run("oversized title rejected", func(t *testing.T) {
		long := make([]byte, maxTitleLen+1)
		for i := range long {
			long[i] = 'a'
		}
		in := TodoInput{Title: string(long)}
		assert.ErrorIs(t, in.Validate(), ErrValidation)
	})

	t.Run("oversized description rejected", func(t *testing.T) {
		long := make([]byte, maxDescriptionLen+1)
		for i := range long {
			long[i] = 'a'
		}
		d := string(long)
		in := TodoInput{Title: "ok", Description: &d}
		err := in.Validate()
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "description")
	})

	t.Run("nil description is fine", func(t *testing.T) {
		in := TodoInput{Title: "ok"}
		assert.NoError(t, in.Validate())
	})
}

func TestTodoPatchValidate(t *testing.T) {
	t.Run("empty patch passes", func(t *testing.T) {
		p := TodoPatch{}
		assert.NoError(t, p.Validate())
		assert.True(t, p.Empty())
	})

	t.Run("set title is trimmed and checked", func(t *testing.T) {
		p := TodoPatch{Title: strPtr("  Call mom ")}
		require.NoError(t, p.Validate())
		assert.Equal(t, "Call mom", *p.Title)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		p := TodoPatch{Title: strPtr("   ")}
		assert.ErrorIs(t, p.Validate(), ErrValidation)
	})

	t.Run("completed-only patch is not empty", func(t *testing.T) {
		done := true
		p := TodoPatch{Completed: &done}
		assert.False(t, p.Empty())
	})

	t.Run("due-date clear is not empty", func(t *testing.T) {
		p := TodoPatch{SetDueDate: true}
		assert.False(t, p.Empty())
	})
}

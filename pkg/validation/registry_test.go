package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubCheck(tag string) CheckFunc {
	return func(ctx context.Context, env *CheckContext, rec *Record) (*Result, error) {
		res := NewResult()
		res.Pass(tag)
		return res, nil
	}
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a version-specific check over the default", func(t *testing.T) {
		r := NewRegistry()
		r.Register("test", DefaultVersion, ActionSearch, stubCheck("default"))
		r.Register("test", "2.0.0", ActionSearch, stubCheck("versioned"))

		fn, err := r.Resolve("test", "2.0.0", ActionSearch)
		require.NoError(t, err)

		res, err := fn(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"versioned"}, res.Passed)
	})

	t.Run("falls back to the default version", func(t *testing.T) {
		r := NewRegistry()
		r.Register("test", DefaultVersion, ActionSearch, stubCheck("default"))

		fn, err := r.Resolve("test", "9.9.9", ActionSearch)
		require.NoError(t, err)

		res, err := fn(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"default"}, res.Passed)
	})

	t.Run("unknown domain is a configuration error", func(t *testing.T) {
		r := NewRegistry()
		r.Register("test", DefaultVersion, ActionSearch, stubCheck("default"))

		_, err := r.Resolve("other", DefaultVersion, ActionSearch)
		assert.ErrorIs(t, err, ErrDomainNotConfigured)
	})

	t.Run("unregistered action is a resolution error", func(t *testing.T) {
		r := NewRegistry()
		r.Register("test", DefaultVersion, ActionSearch, stubCheck("default"))

		_, err := r.Resolve("test", DefaultVersion, ActionConfirm)
		assert.ErrorIs(t, err, ErrCheckNotFound)
	})

	t.Run("action lookup is case-insensitive", func(t *testing.T) {
		r := NewRegistry()
		r.Register("test", DefaultVersion, "SEARCH", stubCheck("default"))

		_, err := r.Resolve("test", DefaultVersion, "Search")
		assert.NoError(t, err)
	})
}

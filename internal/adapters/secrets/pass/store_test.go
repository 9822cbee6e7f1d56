package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, context.Background(), ctx)
			assert.Equal(t, []string{"insert", "-m", "-f", "naver/session"}, args)
			assert.Equal(t, "top-secret\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "naver/session", "top-secret")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "naver/session"}, args)
			assert.Empty(t, input)
			return "top-secret\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "naver/session")
	require.NoError(t, err)
	assert.Equal(t, "top-secret", value)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", "naver/session"}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	err := store.Delete(context.Background(), "naver/session")
	require.NoError(t, err)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "entry not found", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "naver/session")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "naver/session")
	assert.ErrorContains(t, err, "entry not found")
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: naver/session is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "naver/session")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

package embedded

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closableService struct {
	closed int
	err    error
}

func (c *closableService) Close() error {
	c.closed++
	return c.err
}

func TestScopeRegisterResolve(t *testing.T) {
	scope := NewScope()

	require.NoError(t, scope.Register("store", "service"))

	got, ok := scope.Resolve("store")
	require.True(t, ok)
	assert.Equal(t, "service", got)

	_, ok = scope.Resolve("missing")
	assert.False(t, ok)
}

func TestScopeCloseReleasesClosers(t *testing.T) {
	scope := NewScope()
	svc := &closableService{}
	require.NoError(t, scope.Register("db", svc))

	require.NoError(t, scope.Close())
	assert.Equal(t, 1, svc.closed)
	assert.True(t, scope.Closed())

	// Idempotent: a second close must not re-close services.
	require.NoError(t, scope.Close())
	assert.Equal(t, 1, svc.closed)
}

func TestScopeCloseReportsFirstError(t *testing.T) {
	scope := NewScope()
	require.NoError(t, scope.Register("bad", &closableService{err: errors.New("boom")}))

	err := scope.Close()
	require.Error(t, err)
}

func TestScopeRejectsUseAfterClose(t *testing.T) {
	scope := NewScope()
	require.NoError(t, scope.Close())

	assert.Error(t, scope.Register("late", 1))

	_, ok := scope.Resolve("late")
	assert.False(t, ok)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campsync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driven"
)

func newTestSourceService(conn *mockConnector) (*SourceService, *memory.SourceStore) {
	store := memory.NewSourceStore()
	factory := NewConnectorFactory()
	factory.Register("mock", func(domain.Source) (driven.Connector, error) {
		return conn, nil
	})
	return NewSourceService(store, factory, nopReporter{}), store
}

func TestSourceAdd(t *testing.T) {
	conn := &mockConnector{sourceID: "src-1"}
	service, store := newTestSourceService(conn)

	source := domain.Source{ID: "src-1", Type: "mock", Name: "Test"}
	require.NoError(t, service.Add(context.Background(), source))

	saved, err := store.Get(context.Background(), "src-1")
	require.NoError(t, err)
	assert.Equal(t, "Test", saved.Name)

	// Probe connector is closed after validation.
	assert.True(t, conn.closed)
}

func TestSourceAddRejectsBadCredentials(t *testing.T) {
	conn := &mockConnector{
		sourceID:    "src-1",
		validateErr: errors.New("API error 401: 401 Unauthorized"),
	}
	service, store := newTestSourceService(conn)

	err := service.Add(context.Background(), domain.Source{ID: "src-1", Type: "mock"})
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	// A rejected source is never stored.
	_, err = store.Get(context.Background(), "src-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceAddEmptyID(t *testing.T) {
	service, _ := newTestSourceService(&mockConnector{})

	err := service.Add(context.Background(), domain.Source{Type: "mock"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSourceAddDuplicate(t *testing.T) {
	conn := &mockConnector{sourceID: "src-1"}
	service, _ := newTestSourceService(conn)

	source := domain.Source{ID: "src-1", Type: "mock"}
	require.NoError(t, service.Add(context.Background(), source))

	err := service.Add(context.Background(), source)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestSourceAddUnsupportedType(t *testing.T) {
	service, _ := newTestSourceService(&mockConnector{})

	err := service.Add(context.Background(), domain.Source{ID: "src-1", Type: "gopherchat"})
	require.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestSourceListAndRemove(t *testing.T) {
	conn := &mockConnector{sourceID: "src-1"}
	service, _ := newTestSourceService(conn)
	ctx := context.Background()

	require.NoError(t, service.Add(ctx, domain.Source{ID: "src-1", Type: "mock"}))

	sources, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 1)

	require.NoError(t, service.Remove(ctx, "src-1"))

	sources, err = service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)
}

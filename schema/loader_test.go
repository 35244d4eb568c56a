package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cassdao/common"
)

type fakeCatalog struct {
	connectErr error
	descErr    error
	desc       *TableDescriptor

	calls []string
}

func (f *fakeCatalog) Connect(ctx context.Context) error {
	f.calls = append(f.calls, "connect")
	return f.connectErr
}

func (f *fakeCatalog) TableDescriptor(ctx context.Context, keyspace, table string) (*TableDescriptor, error) {
	f.calls = append(f.calls, "describe "+keyspace+"."+table)
	return f.desc, f.descErr
}

func TestLoad(t *testing.T) {
	catalog := &fakeCatalog{desc: &TableDescriptor{
		Columns:       cols("id", "name"),
		PartitionKeys: cols("id"),
	}}

	info, err := Load(context.Background(), catalog, QualifiedName{Keyspace: "ks", Table: "users"})
	require.NoError(t, err)
	assert.Equal(t, []string{"connect", "describe ks.users"}, catalog.calls)
	assert.Equal(t, "ks", info.Keyspace, "missing names are filled from the request")
	assert.Equal(t, "users", info.Name)
	assert.Equal(t, "", catalog.desc.Keyspace, "descriptor is not mutated")
	assert.Equal(t, []string{"id"}, info.PrimaryKeys())
}

func TestLoadPropagatesErrors(t *testing.T) {
	connErr := errors.New("no hosts available")
	catalog := &fakeCatalog{connectErr: connErr}
	_, err := Load(context.Background(), catalog, QualifiedName{Keyspace: "ks", Table: "users"})
	assert.Equal(t, connErr, err)
	assert.Equal(t, []string{"connect"}, catalog.calls)

	descErr := errors.New("keyspace ks does not exist")
	catalog = &fakeCatalog{descErr: descErr}
	_, err = Load(context.Background(), catalog, QualifiedName{Keyspace: "ks", Table: "users"})
	assert.Equal(t, descErr, err)
}

func TestLoadMissingDescriptor(t *testing.T) {
	catalog := &fakeCatalog{}
	info, err := Load(context.Background(), catalog, QualifiedName{Keyspace: "ks", Table: "ghost"})
	assert.Nil(t, info)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, err.Error(), "ks.ghost")
}

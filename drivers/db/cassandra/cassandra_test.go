package cassandra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cassdao"
)

func TestParseIndexTarget(t *testing.T) {
	tests := map[string]string{
		"email":            "email",
		"values(tags)":     "tags",
		"keys(attrs)":      "attrs",
		"entries(attrs)":   "attrs",
		"full(frozen_set)": "frozen_set",
		`"MixedCase"`:      "MixedCase",
		`values("Tags")`:   "Tags",
		`"we""ird"`:        `we"ird`,
		"  padded ":        "padded",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, parseIndexTarget(in), in)
	}
}

func TestBindNamed(t *testing.T) {
	stmt, args, err := bindNamed("SELECT * FROM users WHERE id in :id AND day=:day", map[string]interface{}{
		"day": "2024-01-01",
		"id":  []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE id in ? AND day=?", stmt)
	assert.Equal(t, []interface{}{[]string{"a", "b"}, "2024-01-01"}, args)

	stmt, args, err = bindNamed("UPDATE t SET m = m + {'a':1} WHERE id = 1", nil)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE t SET m = m + {'a':1} WHERE id = 1", stmt)
	assert.Nil(t, args)

	_, _, err = bindNamed("SELECT * FROM users WHERE id=:id", map[string]interface{}{"other": 1})
	assert.Error(t, err)
}

func TestClusterConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keyspace = "app"
	cfg.Username = "cassandra"
	cfg.Password = "secret"
	cfg.Consistency = "local_quorum"
	cfg.Timeout = 3 * time.Second

	cluster, err := cfg.ClusterConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1"}, cluster.Hosts)
	assert.Equal(t, 9042, cluster.Port)
	assert.Equal(t, "app", cluster.Keyspace)
	assert.Equal(t, gocql.LocalQuorum, cluster.Consistency)
	assert.Equal(t, 3*time.Second, cluster.Timeout)
	assert.Equal(t, 5000, cluster.PageSize)
	assert.Equal(t, gocql.PasswordAuthenticator{Username: "cassandra", Password: "secret"}, cluster.Authenticator)

	cfg.Consistency = "SOMETIMES"
	_, err = cfg.ClusterConfig()
	assert.Error(t, err)
}

func TestConnectWithoutHosts(t *testing.T) {
	s := Open(Config{Keyspace: "app"})
	assert.Equal(t, "app", s.Keyspace())

	err := s.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, cassdao.ErrConnection)
	assert.ErrorIs(t, err, gocql.ErrNoHosts)

	_, err = s.TableDescriptor(context.Background(), "app", "users")
	assert.ErrorIs(t, err, cassdao.ErrConnection)

	assert.Error(t, s.Close(), "nothing to close")
}

func TestConnectHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Open(DefaultConfig()).Connect(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestQueryPlan(t *testing.T) {
	t.Run("nil options auto-page", func(t *testing.T) {
		p, err := newQueryPlan(nil)
		require.NoError(t, err)
		assert.False(t, p.singlePage)

		q := p.apply((&gocql.Session{}).Query("SELECT * FROM app.users"))
		assert.False(t, q.IsIdempotent())
	})

	t.Run("first page", func(t *testing.T) {
		p, err := newQueryPlan(&cassdao.QueryOptions{PageSize: 50, Consistency: "local_quorum", Idempotent: true})
		require.NoError(t, err)
		assert.True(t, p.singlePage)
		assert.Nil(t, p.pageState)
		assert.Equal(t, 50, p.pageSize)

		q := p.apply((&gocql.Session{}).Query("SELECT * FROM app.users"))
		assert.Equal(t, gocql.LocalQuorum, q.GetConsistency())
		assert.True(t, q.IsIdempotent())
	})

	t.Run("resume", func(t *testing.T) {
		p, err := newQueryPlan(&cassdao.QueryOptions{PageState: []byte{0x01, 0x02}})
		require.NoError(t, err)
		assert.True(t, p.singlePage)
		assert.Equal(t, []byte{0x01, 0x02}, p.pageState)
		assert.False(t, p.setConsistency)
	})

	t.Run("invalid consistency", func(t *testing.T) {
		_, err := newQueryPlan(&cassdao.QueryOptions{Consistency: "most"})
		assert.Error(t, err)
	})
}

func TestExecuteRejectsInvalidConsistencyBeforeConnecting(t *testing.T) {
	s := Open(Config{})
	_, err := s.Execute(context.Background(), "SELECT * FROM app.users", nil, &cassdao.QueryOptions{Consistency: "most"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, cassdao.ErrConnection)
	assert.NotErrorIs(t, err, cassdao.ErrConfiguration)
}

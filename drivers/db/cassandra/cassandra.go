package cassandra

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gocql/gocql"
	"github.com/rs/zerolog"

	"cassdao"
)

// CassandraSession implements the cassdao.Session interface on top of gocql.
// The underlying gocql session is created lazily on the first Connect.
type CassandraSession struct {
	cfg Config

	mu      sync.Mutex
	session *gocql.Session
}

// Compile-time check to ensure the interface is implemented.
var _ cassdao.Session = (*CassandraSession)(nil)

// --- Constructor ---

// Open returns a session for cfg without connecting. Call Connect, or let
// the first metadata load or Execute do it.
func Open(cfg Config) *CassandraSession {
	return &CassandraSession{cfg: cfg}
}

// NewFromSession wraps an already established gocql session. keyspace should
// match the keyspace the session was created with.
func NewFromSession(session *gocql.Session, keyspace string) *CassandraSession {
	return &CassandraSession{
		cfg:     Config{Keyspace: keyspace},
		session: session,
	}
}

// --- Session Methods ---

// Connect creates the gocql session if needed and checks it with a query on
// system.local. Failures are reported as cassdao.ErrConnection joined with
// the driver error.
func (s *CassandraSession) Connect(ctx context.Context) error {
	_, err := s.gocqlSession(ctx)
	return err
}

func (s *CassandraSession) gocqlSession(ctx context.Context) (*gocql.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		return s.session, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	cluster, err := s.cfg.ClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cassdao.ErrConfiguration, err)
	}

	st := time.Now()
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cassdao.ErrConnection, err)
	}
	if err := session.Query("SELECT release_version FROM system.local").WithContext(ctx).Scan(new(string)); err != nil {
		session.Close()
		return nil, fmt.Errorf("%w: testing connection: %w", cassdao.ErrConnection, err)
	}
	logger.Debug().Strs("hosts", s.cfg.Hosts).Msgf("connected to cassandra in %s", time.Since(st))

	s.session = session
	return session, nil
}

// Keyspace returns the configured default keyspace.
func (s *CassandraSession) Keyspace() string {
	return s.cfg.Keyspace
}

// Execute compiles the named parameters in query to positional markers and
// runs it. With nil opts every page is read and PageState is nil. With non-nil
// opts a single page is read, starting at opts.PageState, and the returned
// PageState resumes after it.
func (s *CassandraSession) Execute(ctx context.Context, query string, params map[string]interface{}, opts *cassdao.QueryOptions) (*cassdao.ResultSet, error) {
	plan, err := newQueryPlan(opts)
	if err != nil {
		return nil, err
	}

	session, err := s.gocqlSession(ctx)
	if err != nil {
		return nil, err
	}

	stmt, args, err := bindNamed(query, params)
	if err != nil {
		return nil, err
	}

	iter := plan.apply(session.Query(stmt, args...).WithContext(ctx)).Iter()
	columns := iter.Columns()
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	pageState := iter.PageState()

	// SliceMap closes the iterator and returns its error.
	rows, err := iter.SliceMap()
	if err != nil {
		return nil, err
	}
	if !plan.singlePage || len(pageState) == 0 {
		pageState = nil
	}
	return &cassdao.ResultSet{
		Rows:      rows,
		Columns:   names,
		PageState: pageState,
	}, nil
}

// queryPlan is the per-query settings derived from cassdao.QueryOptions.
type queryPlan struct {
	consistency    gocql.Consistency
	setConsistency bool
	pageSize       int
	pageState      []byte
	idempotent     bool
	// singlePage disables gocql's auto-paging so iteration stops after one page.
	singlePage bool
}

func newQueryPlan(opts *cassdao.QueryOptions) (queryPlan, error) {
	if opts == nil {
		return queryPlan{}, nil
	}
	p := queryPlan{
		pageSize:   opts.PageSize,
		pageState:  opts.PageState,
		idempotent: opts.Idempotent,
		singlePage: true,
	}
	if opts.Consistency != "" {
		c, err := parseConsistency(opts.Consistency)
		if err != nil {
			return queryPlan{}, err
		}
		p.consistency, p.setConsistency = c, true
	}
	return p, nil
}

func (p queryPlan) apply(q *gocql.Query) *gocql.Query {
	if !p.singlePage {
		return q
	}
	if p.setConsistency {
		q = q.Consistency(p.consistency)
	}
	if p.pageSize > 0 {
		q = q.PageSize(p.pageSize)
	}
	// PageState is the only switch that turns auto-paging off, so it is set
	// even for the first page.
	return q.PageState(p.pageState).Idempotent(p.idempotent)
}

// Close closes the underlying gocql session, if any.
func (s *CassandraSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return errors.New("cassandra session is nil or already closed")
	}
	s.session.Close()
	s.session = nil
	return nil
}

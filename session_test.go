package cassdao_test

import (
	"context"
	"sync"

	"cassdao"
	"cassdao/schema"
)

// fakeSession is an in-memory cassdao.Session that counts calls.
type fakeSession struct {
	mu sync.Mutex

	keyspace string
	desc     *schema.TableDescriptor
	result   *cassdao.ResultSet

	connectErr error
	descErr    error
	execErr    error

	// started receives once per TableDescriptor call when non-nil.
	started chan struct{}
	// gate blocks TableDescriptor until closed when non-nil.
	gate chan struct{}

	connects  int
	descCalls int
	execCalls int

	lastKeyspace string
	lastTable    string
	lastQuery    string
	lastParams   map[string]interface{}
	lastOpts     *cassdao.QueryOptions
}

var _ cassdao.Session = (*fakeSession)(nil)

func (f *fakeSession) Connect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	return f.connectErr
}

func (f *fakeSession) TableDescriptor(ctx context.Context, keyspace, table string) (*schema.TableDescriptor, error) {
	f.mu.Lock()
	f.descCalls++
	f.lastKeyspace, f.lastTable = keyspace, table
	started, gate := f.started, f.gate
	desc, err := f.desc, f.descErr
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return desc, nil
}

func (f *fakeSession) Keyspace() string {
	return f.keyspace
}

func (f *fakeSession) Execute(ctx context.Context, query string, params map[string]interface{}, opts *cassdao.QueryOptions) (*cassdao.ResultSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execCalls++
	f.lastQuery, f.lastParams, f.lastOpts = query, params, opts
	if f.execErr != nil {
		return nil, f.execErr
	}
	return f.result, nil
}

func (f *fakeSession) counts() (connects, descCalls, execCalls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connects, f.descCalls, f.execCalls
}

func (f *fakeSession) supplier() cassdao.SessionSupplier {
	return func() cassdao.Session { return f }
}

// usersDescriptor is a table keyed by (id, created_at) with an index on
// email and a redundant index on the key column id.
func usersDescriptor() *schema.TableDescriptor {
	cols := []schema.ColumnDescriptor{
		{Name: "id", Type: "uuid", Kind: schema.KindPartitionKey, Position: 0},
		{Name: "created_at", Type: "timestamp", Kind: schema.KindClustering, Position: 0},
		{Name: "email", Type: "text", Kind: schema.KindRegular, Position: -1},
		{Name: "name", Type: "text", Kind: schema.KindRegular, Position: -1},
	}
	return &schema.TableDescriptor{
		Keyspace:       "app",
		Name:           "users",
		Columns:        cols,
		PartitionKeys:  cols[:1],
		ClusteringKeys: cols[1:2],
		Indexes: []schema.IndexDescriptor{
			{Name: "users_email_idx", Target: "email", Kind: "COMPOSITES"},
			{Name: "users_id_idx", Target: "id", Kind: "COMPOSITES"},
		},
	}
}

package cassdao

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"cassdao/internal/cqlbuilder"
	"cassdao/internal/logging"
	"cassdao/schema"
)

// Adapter binds one table to a session supplier and caches the table's
// column classification. It satisfies DAOAdapter.
type Adapter struct {
	table    string
	supplier SessionSupplier
	opts     *Options

	mu   sync.RWMutex
	info *schema.TableInfo
	// gen is bumped by Refresh; a load only fills the cache for the gen it started in.
	gen   uint64
	group singleflight.Group
}

var _ DAOAdapter = (*Adapter)(nil)

// New creates an adapter for table, which may be "keyspace.table" or a bare
// table name resolved against the session's keyspace. opts is kept as-is.
func New(table string, supplier SessionSupplier, opts *Options) *Adapter {
	return &Adapter{
		table:    table,
		supplier: supplier,
		opts:     opts,
	}
}

// Table returns the raw table identifier the adapter was created with.
func (a *Adapter) Table() string {
	return a.table
}

// Options returns the options record passed to New.
func (a *Adapter) Options() *Options {
	return a.opts
}

// --- Metadata cache ---

// EnsureLoaded loads the table metadata if it is not cached yet. Concurrent
// callers share a single in-flight load. A nil return always leaves the
// metadata cached: if Refresh runs while a load is in flight, that result is
// dropped and a load for the new generation is joined or started. If ctx is
// done first, ctx.Err() is returned to this caller and the load carries on
// for the others.
func (a *Adapter) EnsureLoaded(ctx context.Context) error {
	loadCtx := context.WithoutCancel(ctx)
	for {
		a.mu.RLock()
		loaded, gen := a.info != nil, a.gen
		a.mu.RUnlock()
		if loaded {
			return nil
		}

		ch := a.group.DoChan(strconv.FormatUint(gen, 10), func() (interface{}, error) {
			return a.load(loadCtx, gen)
		})

		select {
		case res := <-ch:
			if res.Err != nil {
				return res.Err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *Adapter) load(ctx context.Context, gen uint64) (*schema.TableInfo, error) {
	// A caller may reach DoChan just after an earlier flight for gen completed.
	a.mu.RLock()
	info, current := a.info, a.gen
	a.mu.RUnlock()
	if info != nil && current == gen {
		return info, nil
	}

	session, err := a.session()
	if err != nil {
		return nil, err
	}
	name, err := schema.ResolveName(a.table, session.Keyspace())
	if err != nil {
		return nil, err
	}

	info, err = schema.Load(ctx, session, name)
	if err != nil {
		a.logger(ctx).Debug().Err(err).Msg("loading table metadata failed")
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gen != gen {
		a.logger(ctx).Debug().Msg("table metadata refreshed during load, discarding result")
		return nil, nil
	}
	a.info = info
	return info, nil
}

// Refresh drops the cached metadata. The next EnsureLoaded fetches it again.
func (a *Adapter) Refresh() {
	a.mu.Lock()
	a.info = nil
	a.gen++
	a.mu.Unlock()
}

// Loaded reports whether metadata is cached.
func (a *Adapter) Loaded() bool {
	return a.loaded() != nil
}

// TableInfo returns the cached metadata, or nil before EnsureLoaded.
func (a *Adapter) TableInfo() *schema.TableInfo {
	return a.loaded()
}

func (a *Adapter) loaded() *schema.TableInfo {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.info
}

// --- Classification queries ---

// IsPrimaryKey reports whether column is a partition or clustering key.
// Unknown columns, and any column before EnsureLoaded, report false.
func (a *Adapter) IsPrimaryKey(column string) bool {
	return a.classifiedAs(column, schema.PrimaryKey)
}

// IsIndex reports whether column is a non-key secondary index target.
func (a *Adapter) IsIndex(column string) bool {
	return a.classifiedAs(column, schema.Index)
}

// Exists reports whether column is part of the table.
func (a *Adapter) Exists(column string) bool {
	info := a.mustLoaded("Exists")
	if info == nil {
		return false
	}
	_, ok := info.Classification(column)
	return ok
}

func (a *Adapter) classifiedAs(column string, want schema.Classification) bool {
	info := a.mustLoaded("classification")
	if info == nil {
		return false
	}
	c, ok := info.Classification(column)
	return ok && c == want
}

// mustLoaded returns the cached info, logging a warning when it is missing.
func (a *Adapter) mustLoaded(op string) *schema.TableInfo {
	info := a.loaded()
	if info == nil {
		a.logger(context.Background()).Warn().Err(ErrNotLoaded).Str("op", op).Msg("call before EnsureLoaded")
	}
	return info
}

// --- Fragment builders ---

// SelectColumns joins columns with commas. A nil slice selects the table's
// cached column list instead; a non-nil empty slice yields "".
func (a *Adapter) SelectColumns(columns []string) string {
	if columns != nil {
		return cqlbuilder.JoinColumns(columns)
	}
	info := a.mustLoaded("SelectColumns")
	if info == nil {
		return ""
	}
	return info.ColumnsString()
}

// ColumnsPair renders col=:col for each column, comma separated.
func (a *Adapter) ColumnsPair(columns []string) string {
	return cqlbuilder.ColumnsPair(columns)
}

// WherePair renders a single predicate on field; slice values produce "field in :field".
func (a *Adapter) WherePair(field string, value interface{}) string {
	return cqlbuilder.WherePair(field, value)
}

// WhereClause renders every filter entry with WherePair, joined by AND.
func (a *Adapter) WhereClause(filter map[string]interface{}) string {
	return cqlbuilder.WhereClause(filter)
}

// QualifiedTable returns keyspace.table once loaded, the raw identifier otherwise.
func (a *Adapter) QualifiedTable() string {
	if info := a.loaded(); info != nil {
		return info.QualifiedName().String()
	}
	return a.table
}

// --- Execute ---

// Execute runs query on the current session. It does not touch the metadata
// cache. Store errors are logged and returned unchanged.
func (a *Adapter) Execute(ctx context.Context, query string, params map[string]interface{}, opts *QueryOptions) ([]Row, *ResultSet, error) {
	session, err := a.session()
	if err != nil {
		return nil, nil, err
	}

	result, err := session.Execute(ctx, query, params, opts)
	if err != nil {
		a.logger(ctx).Error().Err(err).Str("query", query).Int("params", len(params)).Msg("execute failed")
		return nil, nil, err
	}
	if result == nil {
		result = &ResultSet{}
	}
	return result.Rows, result, nil
}

func (a *Adapter) session() (Session, error) {
	if a.supplier == nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, ErrNilSupplier)
	}
	s := a.supplier()
	if s == nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, ErrNilSession)
	}
	return s, nil
}

func (a *Adapter) logger(ctx context.Context) *zerolog.Logger {
	base := zerolog.Ctx(ctx)
	if base.GetLevel() == zerolog.Disabled {
		base = logging.Logger()
	}
	l := base.With().Str("table", a.table).Logger()
	return &l
}

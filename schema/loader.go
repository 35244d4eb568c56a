package schema

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"cassdao/common"
)

// Load connects through catalog, fetches the descriptor for name and
// classifies it. Errors from the catalog are returned unchanged.
func Load(ctx context.Context, catalog Catalog, name QualifiedName) (*TableInfo, error) {
	logger := zerolog.Ctx(ctx).With().Str("keyspace", name.Keyspace).Str("table", name.Table).Logger()

	s := time.Now()
	if err := catalog.Connect(ctx); err != nil {
		return nil, err
	}

	desc, err := catalog.TableDescriptor(ctx, name.Keyspace, name.Table)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, fmt.Errorf("%w: table %s", common.ErrNotFound, name)
	}
	if desc.Keyspace == "" || desc.Name == "" {
		d := *desc
		d.Keyspace, d.Name = name.Keyspace, name.Table
		desc = &d
	}

	info := Classify(desc)
	logger.Debug().Msgf("loaded %d columns in %s", len(info.order), time.Since(s))
	return info, nil
}

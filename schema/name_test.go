package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cassdao/common"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		def      string
		expected QualifiedName
	}{
		{"qualified", "ks.tbl", "default_ks", QualifiedName{"ks", "tbl"}},
		{"qualified without default", "ks.tbl", "", QualifiedName{"ks", "tbl"}},
		{"unqualified", "tbl", "default_ks", QualifiedName{"default_ks", "tbl"}},
		{"splits on first dot", "ks.tbl.extra", "", QualifiedName{"ks", "tbl.extra"}},
		{"leading dot falls back", ".tbl", "default_ks", QualifiedName{"default_ks", "tbl"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveName(tt.raw, tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveNameWithoutKeyspace(t *testing.T) {
	for _, raw := range []string{"tbl", ".tbl"} {
		_, err := ResolveName(raw, "")
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, common.ErrConfiguration)
		assert.ErrorIs(t, err, common.ErrNoKeyspace)
	}
}

func TestQualifiedNameString(t *testing.T) {
	assert.Equal(t, "ks.tbl", QualifiedName{Keyspace: "ks", Table: "tbl"}.String())
}

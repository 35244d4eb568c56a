package schema

// Classification is the role a column plays in its table.
type Classification int

const (
	// Plain is an ordinary column.
	Plain Classification = iota + 1
	// PrimaryKey is a partition or clustering key column.
	PrimaryKey
	// Index is a non-key column targeted by a secondary index.
	Index
)

func (c Classification) String() string {
	switch c {
	case Plain:
		return "column"
	case PrimaryKey:
		return "primary_key"
	case Index:
		return "index"
	default:
		return "unknown"
	}
}

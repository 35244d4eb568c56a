package cassandra

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// bindNamed rewrites :name markers in query to positional ? markers and
// returns the matching arguments taken from params. A query without params
// is passed through untouched, so map literals such as {'a':1} survive.
func bindNamed(query string, params map[string]interface{}) (string, []interface{}, error) {
	if len(params) == 0 {
		return query, nil, nil
	}
	stmt, args, err := sqlx.Named(query, params)
	if err != nil {
		return "", nil, fmt.Errorf("binding named parameters: %w", err)
	}
	return stmt, args, nil
}

// Package orders provides access to the orders database: a fixed two-table
// schema (orders joined to customers) queried through a single execution
// contract.
package orders

import "context"

// Executor runs one parameterized statement and returns its rows as
// column-name-to-value maps. Implementations must propagate connectivity and
// syntax errors distinguishably; callers never retry.
type Executor interface {
	Execute(ctx context.Context, sqlText string, params []any) ([]map[string]any, error)
}

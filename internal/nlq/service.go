// Package nlq translates natural-language questions about the orders schema
// into parameterized SQL. The vocabulary is fixed and small: aggregate
// keywords, a handful of filters (status, customer, date range, top-N), and
// relative date phrases. Unrecognized phrasing is never an error; it falls
// through to the most conservative interpretation, an unfiltered row count.
package nlq

import (
	"context"
	"fmt"
	"time"

	"github.com/voxsql/voxsql/internal/observability"
	"github.com/voxsql/voxsql/internal/orders"
)

// Result is the envelope returned to callers: the generated SQL, its bound
// parameters in placeholder order, and the rows the backend produced.
type Result struct {
	SQL    string           `json:"sql"`
	Params []any            `json:"params"`
	Rows   []map[string]any `json:"rows"`
}

// Service owns the full translate-and-run path. It keeps no state between
// calls; each invocation is a function of the input text, the injected
// clock's current date, and the executor's result.
type Service struct {
	exec orders.Executor
	now  func() time.Time
}

func NewService(exec orders.Executor, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{exec: exec, now: now}
}

// Translate builds the statement for text without executing it, anchored at
// the given date.
func Translate(text string, today time.Time) Statement {
	normalized := Normalize(text)
	intent := ClassifyIntent(normalized)
	filters := ExtractFilters(normalized, today)
	return BuildStatement(intent, filters)
}

// TranslateAndRun translates text, executes the statement, and packages the
// result. Execution failures propagate to the caller unmodified; the service
// performs no retries and returns no partial results.
func (s *Service) TranslateAndRun(ctx context.Context, text string) (Result, error) {
	stmt := Translate(text, s.now())
	sqlText, params := stmt.Render()

	start := time.Now()
	rows, err := s.exec.Execute(ctx, sqlText, params)
	if err != nil {
		observability.IncrementExecutionFailure()
		return Result{}, fmt.Errorf("run translated query: %w", err)
	}
	observability.ObserveTranslation(stmt.Select.String(), time.Since(start))

	return Result{SQL: sqlText, Params: params, Rows: rows}, nil
}

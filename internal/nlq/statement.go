package nlq

import (
	"fmt"
	"strings"
)

// SelectKind is the resolved selection clause. Exactly one kind survives the
// precedence chain in BuildStatement.
type SelectKind int

const (
	SelectCount SelectKind = iota
	SelectSum
	SelectAvg
	SelectStatusBreakdown
	SelectCustomerTotals
)

func (k SelectKind) String() string {
	switch k {
	case SelectSum:
		return "sum"
	case SelectAvg:
		return "avg"
	case SelectStatusBreakdown:
		return "status_breakdown"
	case SelectCustomerTotals:
		return "customer_totals"
	default:
		return "count"
	}
}

// predicate is one WHERE clause fragment. Format contains one %d verb per
// bound value; placeholder numbers are assigned at render time.
type predicate struct {
	format string
	values []any
}

// Statement is the intermediate representation between intent/filter
// extraction and SQL text. Values never enter the SQL string: rendering binds
// every user-derived value as a numbered parameter, so injection safety holds
// structurally. Limit is the parsed top-N integer and is inlined as a literal
// since it was validated as a digit sequence.
type Statement struct {
	Select     SelectKind
	predicates []predicate
	Limit      int
}

// BuildStatement resolves the raw intent flags and filters into a statement.
// The selection precedence is a design decision, evaluated top to bottom:
// sum, then avg, then the status breakdown, then customer totals (grouping by
// customer, a top-N request, or any customer mention), then the plain count.
// Grouping and ordering follow the chosen kind, so a winning sum or avg never
// emits a GROUP BY even when the text also said "by customer".
func BuildStatement(intent Intent, filters FilterSet) Statement {
	var kind SelectKind
	switch {
	case intent.WantSum:
		kind = SelectSum
	case intent.WantAvg:
		kind = SelectAvg
	case intent.GroupBy == GroupStatus:
		kind = SelectStatusBreakdown
	case intent.GroupBy == GroupCustomer || intent.WantTopN || intent.MentionsCustomers:
		kind = SelectCustomerTotals
	default:
		kind = SelectCount
	}

	stmt := Statement{Select: kind, Limit: filters.Limit}

	// Predicate order is fixed: status, customer, date range.
	if filters.Status != "" {
		stmt.predicates = append(stmt.predicates, predicate{
			format: "LOWER(o.status) = $%d",
			values: []any{filters.Status},
		})
	}
	if filters.Customer != "" {
		stmt.predicates = append(stmt.predicates, predicate{
			format: "LOWER(c.name) = $%d",
			values: []any{strings.ToLower(filters.Customer)},
		})
	}
	if filters.Range != nil {
		stmt.predicates = append(stmt.predicates, predicate{
			format: "o.created_at BETWEEN $%d AND $%d",
			values: []any{filters.Range.Start, filters.Range.End},
		})
	}
	return stmt
}

// Render produces the SQL text and its ordered parameter list. Params are
// returned in the exact order their placeholders appear in the text; callers
// surface both so the executed statement can be audited.
func (s Statement) Render() (string, []any) {
	var sb strings.Builder

	switch s.Select {
	case SelectSum:
		sb.WriteString("SELECT SUM(o.amount) AS total_amount")
	case SelectAvg:
		sb.WriteString("SELECT AVG(o.amount) AS avg_amount")
	case SelectStatusBreakdown:
		sb.WriteString("SELECT o.status, COUNT(*) AS cnt")
	case SelectCustomerTotals:
		sb.WriteString("SELECT c.name AS customer, SUM(o.amount) AS total_amount")
	default:
		sb.WriteString("SELECT COUNT(*) AS count")
	}

	sb.WriteString(" FROM orders o JOIN customers c ON o.customer_id = c.id WHERE 1=1")

	params := make([]any, 0, 4)
	next := 1
	for _, p := range s.predicates {
		numbers := make([]any, len(p.values))
		for i := range p.values {
			numbers[i] = next
			next++
		}
		sb.WriteString(" AND ")
		fmt.Fprintf(&sb, p.format, numbers...)
		params = append(params, p.values...)
	}

	switch s.Select {
	case SelectStatusBreakdown:
		sb.WriteString(" GROUP BY o.status ORDER BY cnt DESC")
	case SelectCustomerTotals:
		sb.WriteString(" GROUP BY c.name ORDER BY total_amount DESC")
	}

	if s.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", s.Limit)
	}

	return sb.String(), params
}

package seed

import (
	"context"
	"database/sql"
	"fmt"
)

// Apply inserts the generator's customers plus orderCount orders in a single
// transaction. Running it twice against the same database will fail on the
// primary keys, which keeps demo data from silently doubling.
func Apply(ctx context.Context, db *sql.DB, g *Generator, orderCount int) error {
	if orderCount <= 0 {
		orderCount = 200
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, customer := range g.Customers() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO customers (id, name, created_at) VALUES ($1, $2, $3)`,
			customer.ID, customer.Name, customer.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert customer %q: %w", customer.Name, err)
		}
	}

	for i := 0; i < orderCount; i++ {
		order := g.NextOrder()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO orders (id, customer_id, status, amount, created_at) VALUES ($1, $2, $3, $4, $5)`,
			order.ID, order.CustomerID, order.Status, order.Amount, order.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert order %d: %w", order.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

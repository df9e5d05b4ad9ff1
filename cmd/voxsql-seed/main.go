package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/voxsql/voxsql/internal/config"
	"github.com/voxsql/voxsql/internal/demo/seed"
	"github.com/voxsql/voxsql/internal/orders"
)

func main() {
	randomSeed := flag.Int64("seed", 42, "random seed for deterministic demo data")
	customers := flag.Int("customers", 0, "number of demo customers; 0 uses all built-in names")
	orderCount := flag.Int("orders", 200, "number of demo orders to insert")
	flag.Parse()

	cfg, err := config.LoadFromEnv("voxsql-seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := orders.Open(ctx, orders.DBConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "database open error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	generator := seed.NewGenerator(*randomSeed, *customers)
	if err := seed.Apply(ctx, db, generator, *orderCount); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded %d customer(s) and %d order(s)\n", len(generator.Customers()), *orderCount)
}

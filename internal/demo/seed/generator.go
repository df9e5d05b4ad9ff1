// Package seed fills the orders schema with deterministic demo data so the
// natural-language endpoints have something to answer against.
package seed

import (
	"math"
	"math/rand"
	"time"
)

type Customer struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type Order struct {
	ID         int64
	CustomerID int64
	Status     string
	Amount     float64
	CreatedAt  time.Time
}

// Customer names stay single lowercase tokens so questions like
// "orders for alice" resolve against the demo data.
var customerNames = []string{
	"alice", "bob", "carol", "dave", "erin",
	"frank", "grace", "heidi", "ivan", "judy",
}

type Generator struct {
	rnd       *rand.Rand
	customers []Customer
	sequence  int64
	now       func() time.Time
}

func NewGenerator(seed int64, customerCount int) *Generator {
	if customerCount <= 0 || customerCount > len(customerNames) {
		customerCount = len(customerNames)
	}
	g := &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: func() time.Time { return time.Now().UTC() },
	}
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	g.customers = make([]Customer, 0, customerCount)
	for i := 0; i < customerCount; i++ {
		g.customers = append(g.customers, Customer{
			ID:        int64(i + 1),
			Name:      customerNames[i],
			CreatedAt: base.AddDate(0, 0, i),
		})
	}
	return g
}

func (g *Generator) Customers() []Customer {
	return g.customers
}

// NextOrder produces an order with a weighted status mix and a creation time
// spread across the 90 days before now.
func (g *Generator) NextOrder() Order {
	g.sequence++
	created := g.now().Add(-time.Duration(g.rnd.Intn(90*24)) * time.Hour)
	return Order{
		ID:         g.sequence,
		CustomerID: g.customers[g.rnd.Intn(len(g.customers))].ID,
		Status:     g.pickStatus(),
		Amount:     round2(5 + g.rnd.Float64()*495),
		CreatedAt:  created,
	}
}

func (g *Generator) pickStatus() string {
	p := g.rnd.Intn(100)
	switch {
	case p < 60:
		return "completed"
	case p < 85:
		return "pending"
	default:
		return "cancelled"
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

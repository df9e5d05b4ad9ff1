package nlq

import "testing"

func TestExtractTopN(t *testing.T) {
	filters := ExtractFilters("top 5 customers", anchor)
	if filters.Limit != 5 {
		t.Fatalf("Limit = %d, want 5", filters.Limit)
	}
	filters = ExtractFilters("top 25 customers this month", anchor)
	if filters.Limit != 25 {
		t.Fatalf("Limit = %d, want 25", filters.Limit)
	}
	filters = ExtractFilters("all customers", anchor)
	if filters.Limit != 0 {
		t.Fatalf("Limit = %d, want 0 for absent top-N", filters.Limit)
	}
}

func TestExtractStatusCanonicalizesCanceled(t *testing.T) {
	cases := map[string]string{
		"completed orders":        "completed",
		"pending orders":          "pending",
		"cancelled orders":        "cancelled",
		"canceled orders":         "cancelled",
		"orders without a status": "",
	}
	for text, want := range cases {
		if got := ExtractFilters(text, anchor).Status; got != want {
			t.Fatalf("Status(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestExtractStatusFirstMatchWins(t *testing.T) {
	// The keyword list is checked in fixed order; "completed" precedes
	// "pending" in it, regardless of position in the sentence.
	got := ExtractFilters("pending and completed orders", anchor).Status
	if got != "completed" {
		t.Fatalf("Status = %q, want %q", got, "completed")
	}
}

func TestExtractCustomerSingleToken(t *testing.T) {
	if got := ExtractFilters("orders for alice", anchor).Customer; got != "alice" {
		t.Fatalf("Customer = %q", got)
	}
	// Only the first lowercase token after "for" is captured.
	if got := ExtractFilters("orders for mary jane", anchor).Customer; got != "mary" {
		t.Fatalf("Customer = %q, want %q", got, "mary")
	}
	if got := ExtractFilters("orders without a name", anchor).Customer; got != "" {
		t.Fatalf("Customer = %q, want empty", got)
	}
}

func TestExtractFiltersCombined(t *testing.T) {
	filters := ExtractFilters("top 3 completed orders for bob last month", anchor)
	if filters.Limit != 3 {
		t.Fatalf("Limit = %d", filters.Limit)
	}
	if filters.Status != "completed" {
		t.Fatalf("Status = %q", filters.Status)
	}
	if filters.Customer != "bob" {
		t.Fatalf("Customer = %q", filters.Customer)
	}
	if filters.Range == nil {
		t.Fatal("Range should be set for \"last month\"")
	}
}

package nlq

import "testing"

func TestNormalize(t *testing.T) {
	if got := Normalize("  How MANY Orders  "); got != "how many orders" {
		t.Fatalf("Normalize() = %q", got)
	}
	if got := Normalize(""); got != "" {
		t.Fatalf("Normalize(\"\") = %q", got)
	}
}

func TestClassifyIntentAggregates(t *testing.T) {
	intent := ClassifyIntent("how many orders were completed")
	if !intent.WantCount {
		t.Fatal("WantCount should be set")
	}
	if !intent.MentionsOrders {
		t.Fatal("MentionsOrders should be set")
	}

	intent = ClassifyIntent("total revenue this month")
	if !intent.WantSum {
		t.Fatal("WantSum should be set")
	}

	intent = ClassifyIntent("average order amount")
	if !intent.WantAvg {
		t.Fatal("WantAvg should be set")
	}
	if !intent.WantSum {
		t.Fatal("WantSum should also be set: \"amount\" is a sum keyword")
	}
}

func TestClassifyIntentWordBoundaries(t *testing.T) {
	// "discount" must not trip the count keyword.
	intent := ClassifyIntent("orders with a discount")
	if intent.WantCount {
		t.Fatal("WantCount should not match inside \"discount\"")
	}
	// "top" without an integer is not a top-N request.
	if ClassifyIntent("top customers").WantTopN {
		t.Fatal("WantTopN requires an integer")
	}
	if !ClassifyIntent("top 5 customers").WantTopN {
		t.Fatal("WantTopN should match \"top 5\"")
	}
}

func TestClassifyIntentGrouping(t *testing.T) {
	if got := ClassifyIntent("count of orders by status").GroupBy; got != GroupStatus {
		t.Fatalf("GroupBy = %v, want GroupStatus", got)
	}
	if got := ClassifyIntent("orders per status").GroupBy; got != GroupStatus {
		t.Fatalf("GroupBy = %v, want GroupStatus", got)
	}
	if got := ClassifyIntent("orders by customer").GroupBy; got != GroupCustomer {
		t.Fatalf("GroupBy = %v, want GroupCustomer", got)
	}
	if got := ClassifyIntent("how many orders").GroupBy; got != GroupNone {
		t.Fatalf("GroupBy = %v, want GroupNone", got)
	}
}

func TestClassifyIntentCustomerDisambiguation(t *testing.T) {
	// "top 5 customers" never says "order"; it still queries orders grouped
	// by customer.
	intent := ClassifyIntent("top 5 customers")
	if intent.GroupBy != GroupCustomer {
		t.Fatalf("GroupBy = %v, want GroupCustomer", intent.GroupBy)
	}
	if !intent.MentionsOrders {
		t.Fatal("MentionsOrders should be forced for customer-only queries")
	}

	// When orders are mentioned too, the grouping stays whatever the text said.
	intent = ClassifyIntent("orders for customer smith")
	if intent.GroupBy != GroupNone {
		t.Fatalf("GroupBy = %v, want GroupNone", intent.GroupBy)
	}
}

func TestClassifyIntentEmptyInput(t *testing.T) {
	intent := ClassifyIntent("")
	if intent != (Intent{}) {
		t.Fatalf("intent = %+v, want zero value", intent)
	}
}

package nlq

import (
	"regexp"
	"strings"
)

// GroupBy names the grouping dimension inferred from the input text.
type GroupBy int

const (
	GroupNone GroupBy = iota
	GroupStatus
	GroupCustomer
)

// Intent carries the aggregate and grouping signals extracted from one input.
// The raw flags are not mutually exclusive; the statement builder resolves
// them with a fixed precedence.
type Intent struct {
	WantCount         bool
	WantSum           bool
	WantAvg           bool
	WantTopN          bool
	GroupBy           GroupBy
	MentionsOrders    bool
	MentionsCustomers bool
}

type intentRule struct {
	match func(string) bool
	apply func(*Intent)
}

func wordMatch(expr string) func(string) bool {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

func contains(substr string) func(string) bool {
	return func(q string) bool { return strings.Contains(q, substr) }
}

// intentRules is the classifier: an ordered table of (predicate, effect)
// pairs evaluated top to bottom against the normalized text. Aggregate
// keywords use word-boundary matching so e.g. "discount" does not trip
// "count"; the two topic cues are plain substring checks.
var intentRules = []intentRule{
	{wordMatch(`\b(count|how many|number of)\b`), func(in *Intent) { in.WantCount = true }},
	{wordMatch(`\b(sum|total|revenue|amount)\b`), func(in *Intent) { in.WantSum = true }},
	{wordMatch(`\b(average|avg)\b`), func(in *Intent) { in.WantAvg = true }},
	{wordMatch(`\btop\s+\d+\b`), func(in *Intent) { in.WantTopN = true }},
	{wordMatch(`\b(by|per) status\b`), func(in *Intent) { in.GroupBy = GroupStatus }},
	{wordMatch(`\b(by|per) customer\b`), func(in *Intent) { in.GroupBy = GroupCustomer }},
	{contains("order"), func(in *Intent) { in.MentionsOrders = true }},
	{contains("customer"), func(in *Intent) { in.MentionsCustomers = true }},
}

// Normalize prepares raw input for matching: surrounding whitespace is
// trimmed and the text lowercased. Empty input stays the empty string.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// ClassifyIntent runs the rule table over normalized text. Phrasings like
// "top 5 customers" mention customers but never orders; those queries
// implicitly aggregate orders grouped by customer, so the classifier forces
// the customer grouping and marks the query order-related.
func ClassifyIntent(normalized string) Intent {
	var intent Intent
	for _, rule := range intentRules {
		if rule.match(normalized) {
			rule.apply(&intent)
		}
	}
	if intent.MentionsCustomers && !intent.MentionsOrders {
		intent.GroupBy = GroupCustomer
		intent.MentionsOrders = true
	}
	return intent
}

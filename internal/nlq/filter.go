package nlq

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FilterSet holds the optional predicates narrowing a query. Zero values mean
// "no filter": empty Status/Customer, nil Range, Limit 0 (unlimited).
type FilterSet struct {
	Status   string
	Customer string
	Range    *DateRange
	Limit    int
}

var (
	topNPattern     = regexp.MustCompile(`\btop\s+(\d+)\b`)
	customerPattern = regexp.MustCompile(`\bfor\s+([a-z]+)\b`)
)

// statusKeywords is checked in this fixed order; the first keyword present in
// the text wins, even when several appear. "canceled" canonicalizes to
// "cancelled".
var statusKeywords = []string{"completed", "pending", "cancelled", "canceled"}

// ExtractFilters pulls the filter predicates out of normalized text. The
// customer pattern captures a single lowercase token after "for"; multi-word
// names are not supported.
func ExtractFilters(normalized string, today time.Time) FilterSet {
	return FilterSet{
		Status:   extractStatus(normalized),
		Customer: extractCustomer(normalized),
		Range:    ResolveDateRange(normalized, today),
		Limit:    extractTopN(normalized),
	}
}

func extractTopN(q string) int {
	match := topNPattern.FindStringSubmatch(q)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

func extractStatus(q string) string {
	for _, keyword := range statusKeywords {
		if strings.Contains(q, keyword) {
			if keyword == "canceled" {
				return "cancelled"
			}
			return keyword
		}
	}
	return ""
}

func extractCustomer(q string) string {
	match := customerPattern.FindStringSubmatch(q)
	if match == nil {
		return ""
	}
	return match[1]
}

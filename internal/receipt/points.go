package receipt

import (
	"strings"
	"unicode"
)

// Rule awards points for one property of a receipt
type Rule struct {
	Name  string
	Score func(r *Receipt) int
}

// RuleScore is the number of points a single rule awarded
type RuleScore struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

// Rules is the fixed set of scoring rules. Each rule is independent of the others.
var Rules = []Rule{
	{Name: "retailer_alphanumeric", Score: retailerPoints},
	{Name: "round_dollar_total", Score: roundDollarPoints},
	{Name: "quarter_multiple_total", Score: quarterMultiplePoints},
	{Name: "item_pairs", Score: itemPairPoints},
	{Name: "description_length", Score: descriptionPoints},
	{Name: "odd_purchase_day", Score: oddDayPoints},
	{Name: "afternoon_purchase", Score: afternoonPoints},
}

// Points computes the score of a validated receipt
func Points(r *Receipt) int {
	total := 0
	for _, rule := range Rules {
		total += rule.Score(r)
	}
	return total
}

// Breakdown reports how many points each rule awarded
func Breakdown(r *Receipt) []RuleScore {
	scores := make([]RuleScore, 0, len(Rules))
	for _, rule := range Rules {
		scores = append(scores, RuleScore{Rule: rule.Name, Points: rule.Score(r)})
	}
	return scores
}

func retailerPoints(r *Receipt) int {
	points := 0
	for _, c := range r.Retailer {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			points++
		}
	}
	return points
}

func roundDollarPoints(r *Receipt) int {
	if r.Total%100 == 0 {
		return 50
	}
	return 0
}

func quarterMultiplePoints(r *Receipt) int {
	if r.Total%25 == 0 {
		return 25
	}
	return 0
}

func itemPairPoints(r *Receipt) int {
	return len(r.Items) / 2 * 5
}

// descriptionPoints awards ceil(price * 0.2) for every item whose trimmed
// description length is a multiple of three. On cents that is ceil(cents / 500).
func descriptionPoints(r *Receipt) int {
	points := 0
	for _, item := range r.Items {
		if len(strings.TrimSpace(item.ShortDescription))%3 != 0 {
			continue
		}
		points += int(item.Price / 500)
		if item.Price%500 != 0 {
			points++
		}
	}
	return points
}

func oddDayPoints(r *Receipt) int {
	if r.PurchasedAt.Day()%2 == 1 {
		return 6
	}
	return 0
}

// afternoonPoints covers 14:01 through 15:59.
func afternoonPoints(r *Receipt) int {
	hour, minute := r.PurchasedAt.Hour(), r.PurchasedAt.Minute()
	if (hour == 14 && minute >= 1) || hour == 15 {
		return 10
	}
	return 0
}

package receipt

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	retailerPattern    = regexp.MustCompile(`^[A-Za-z0-9_\s&-]+$`)
	descriptionPattern = regexp.MustCompile(`^[A-Za-z0-9_\s-]+$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern        = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Validate checks a submission and converts it into a Receipt.
// Purchase date and time are interpreted in now's location, and a purchase
// later than now is rejected. All violations are reported together.
func Validate(sub *Submission, now time.Time) (*Receipt, error) {
	if sub == nil {
		return nil, &ValidationError{Violations: []Violation{{Field: "receipt", Message: "is required"}}}
	}

	verr := &ValidationError{}

	if strings.TrimSpace(sub.Retailer) == "" {
		verr.add("retailer", "is required")
	} else if !retailerPattern.MatchString(sub.Retailer) {
		verr.add("retailer", "contains invalid characters")
	}

	items, pricesOK := validateItems(sub.Items, verr)

	total, err := ParseCents(sub.Total)
	totalOK := err == nil
	if !totalOK {
		verr.add("total", "%v", err)
	}

	date, dateOK := parseDate(sub.PurchaseDate, verr)
	hour, minute, timeOK := parseTime(sub.PurchaseTime, verr)

	var purchasedAt time.Time
	if dateOK && timeOK {
		purchasedAt = time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location())
		if purchasedAt.After(now) {
			verr.add("purchaseDate", "purchase date and time %s are in the future", purchasedAt.Format(dateLayout+" "+timeLayout))
		}
	}

	// The total can only be compared once every price is known.
	if pricesOK && totalOK {
		sum, ok := sumPrices(items)
		if !ok {
			verr.add("items", "sum of item prices is out of range")
		} else if sum != total {
			verr.add("total", "total %s does not match sum of item prices %s", total, sum)
		}
	}

	if len(verr.Violations) > 0 {
		return nil, verr
	}

	return &Receipt{
		Retailer:    sub.Retailer,
		PurchasedAt: purchasedAt,
		Items:       items,
		Total:       total,
	}, nil
}

// validateItems reports whether every item price parsed.
func validateItems(submitted []SubmittedItem, verr *ValidationError) ([]Item, bool) {
	if len(submitted) == 0 {
		verr.add("items", "at least one item is required")
		return nil, false
	}

	ok := true
	items := make([]Item, 0, len(submitted))
	for i, si := range submitted {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(si.ShortDescription) == "" {
			verr.add(field+".shortDescription", "is required")
		} else if !descriptionPattern.MatchString(si.ShortDescription) {
			verr.add(field+".shortDescription", "contains invalid characters")
		}

		price, err := ParseCents(si.Price)
		if err != nil {
			verr.add(field+".price", "%v", err)
			ok = false
		}
		items = append(items, Item{ShortDescription: si.ShortDescription, Price: price})
	}
	return items, ok
}

func parseDate(s string, verr *ValidationError) (time.Time, bool) {
	if !datePattern.MatchString(s) {
		verr.add("purchaseDate", "%q must use the YYYY-MM-DD format", s)
		return time.Time{}, false
	}
	// time.Parse rejects month 13, day 32, and Feb 29 outside leap years.
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		verr.add("purchaseDate", "%q is not a calendar date", s)
		return time.Time{}, false
	}
	return date, true
}

func parseTime(s string, verr *ValidationError) (int, int, bool) {
	if !timePattern.MatchString(s) {
		verr.add("purchaseTime", "%q must use the 24-hour HH:MM format", s)
		return 0, 0, false
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		verr.add("purchaseTime", "%q is not a valid time of day", s)
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

func sumPrices(items []Item) (Cents, bool) {
	var sum Cents
	for _, item := range items {
		if item.Price > math.MaxInt64-sum {
			return 0, false
		}
		sum += item.Price
	}
	return sum, true
}

package receipt

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var amountPattern = regexp.MustCompile(`^\d+\.\d{2}$`)

// Cents is a monetary amount held as an integer number of cents
type Cents int64

// ParseCents parses a non-negative amount with exactly two fraction digits, e.g. "6.49"
func ParseCents(s string) (Cents, error) {
	if !amountPattern.MatchString(s) {
		return 0, fmt.Errorf("amount %q must be a non-negative number with two decimal places", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount: %w", err)
	}
	shifted := d.Shift(2)
	if !shifted.IsInteger() || !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %q is out of range", s)
	}
	return Cents(shifted.IntPart()), nil
}

// String renders the amount as dollars and cents
func (c Cents) String() string {
	return decimal.New(int64(c), -2).StringFixed(2)
}

// MarshalJSON encodes the amount as a string so no precision is lost
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes an amount previously written by MarshalJSON
func (c *Cents) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("unmarshaling amount: %w", err)
	}
	parsed, err := ParseCents(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

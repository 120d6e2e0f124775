// Package numeric normalizes the numeric encodings used by the Alpaca wire
// formats. Depending on the endpoint, the same field may arrive as a JSON
// number, a quoted decimal string, or null; every such field across the client
// decodes through this package so the handling lives in exactly one place.
package numeric

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Number is a float64 that decodes from either a JSON number or a numeric
// JSON string. Optional fields are declared as *Number: null decodes to nil.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return fmt.Errorf("numeric: null is not a number, declare the field as *Number")
	}
	if len(s) >= 2 && s[0] == '"' {
		var quoted string
		if err := json.Unmarshal(data, &quoted); err != nil {
			return fmt.Errorf("numeric: %w", err)
		}
		s = quoted
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("numeric: expected a number, got %s", string(data))
	}
	*n = Number(v)
	return nil
}

// Float64 returns the plain float value.
func (n Number) Float64() float64 { return float64(n) }

// Ptr returns a *Number holding v, for building request payloads.
func Ptr(v float64) *Number {
	n := Number(v)
	return &n
}

// SymbolList is a []string that decodes null as the empty list. Subscription
// acknowledgements omit channels as null rather than [].
type SymbolList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *SymbolList) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*l = SymbolList{}
		return nil
	}
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = SymbolList(raw)
	return nil
}

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the measure a Quantity is expressed in.
type Unit int

// Quantity units.
const (
	UnitHour Unit = iota + 1
	UnitStoryPoint
)

// unitSuffix maps units to their trailing wire character.
var unitSuffix = map[Unit]byte{
	UnitHour:       'h',
	UnitStoryPoint: 'p',
}

// Quantity is a sized effort value such as 3h or 2p. An item that has no
// size or remaining value holds a nil *Quantity; there is no unset variant.
type Quantity struct {
	Unit  Unit  `json:"unit"`
	Value int32 `json:"value"`
}

// Hours returns an hour quantity.
func Hours(n int32) Quantity { return Quantity{Unit: UnitHour, Value: n} }

// StoryPoints returns a story point quantity.
func StoryPoints(n int32) Quantity { return Quantity{Unit: UnitStoryPoint, Value: n} }

// String encodes the quantity as <signed integer><unit>.
// It panics on a zero Quantity, which is never a valid value to persist.
func (q Quantity) String() string {
	suffix, ok := unitSuffix[q.Unit]
	if !ok {
		panic(fmt.Sprintf("types: quantity with unknown unit %d", q.Unit))
	}
	return strconv.FormatInt(int64(q.Value), 10) + string(suffix)
}

// Valid reports whether q has a known unit.
func (q Quantity) Valid() bool {
	_, ok := unitSuffix[q.Unit]
	return ok
}

// IsHours reports whether q is measured in hours.
func (q Quantity) IsHours() bool { return q.Unit == UnitHour }

// ParseQuantity decodes "3h", "-2p" and the like. The trailing character is
// the unit and the remainder must be a base-10 int32 with nothing else.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("%w: empty value", ErrMalformedQuantity)
	}
	var unit Unit
	switch s[len(s)-1] {
	case 'h':
		unit = UnitHour
	case 'p':
		unit = UnitStoryPoint
	default:
		return Quantity{}, fmt.Errorf("%w: %q has no h or p unit", ErrMalformedQuantity, s)
	}
	n, err := strconv.ParseInt(s[:len(s)-1], 10, 32)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrMalformedQuantity, s)
	}
	return Quantity{Unit: unit, Value: int32(n)}, nil
}

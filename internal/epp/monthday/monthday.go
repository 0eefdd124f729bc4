// Package monthday implements the XML Schema gMonthDay value: a recurring
// calendar day with no year and an optional fixed UTC offset.
package monthday

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxDay is indexed by month-1. February allows 29 because no year is known.
var maxDay = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

const maxOffsetMinutes = 14 * 60

// ValidationError reports a rejected month/day/offset component.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("monthday: %s=%s: %s", e.Field, e.Value, e.Reason)
}

// Offset is a fixed distance from UTC in whole minutes.
type Offset struct {
	minutes int
}

// UTC is the zero offset.
var UTC = Offset{}

// OffsetMinutes builds an offset east of UTC. The range is +-14:00.
func OffsetMinutes(minutes int) (Offset, error) {
	if minutes < -maxOffsetMinutes || minutes > maxOffsetMinutes {
		return Offset{}, ValidationError{Field: "offset", Value: strconv.Itoa(minutes), Reason: "outside -14:00..+14:00"}
	}
	return Offset{minutes: minutes}, nil
}

// Minutes returns the offset east of UTC.
func (o Offset) Minutes() int {
	return o.minutes
}

// String renders the offset as +HH:MM or -HH:MM.
func (o Offset) String() string {
	sign := '+'
	m := o.minutes
	if m < 0 {
		sign = '-'
		m = -m
	}
	return fmt.Sprintf("%c%02d:%02d", sign, m/60, m%60)
}

// Location returns a fixed time zone for the offset.
func (o Offset) Location() *time.Location {
	return time.FixedZone(o.String(), o.minutes*60)
}

// MonthDay is an immutable month/day value. The zero value is not valid;
// construct with New or Parse.
type MonthDay struct {
	month     uint8
	day       uint8
	offset    Offset
	hasOffset bool
}

// New validates month and day against the fixed per-month table.
func New(month, day int) (MonthDay, error) {
	if month < 1 || month > 12 {
		return MonthDay{}, ValidationError{Field: "month", Value: strconv.Itoa(month), Reason: "must lie between 1 and 12"}
	}
	if day < 1 || day > 31 {
		return MonthDay{}, ValidationError{Field: "day", Value: strconv.Itoa(day), Reason: "must lie between 1 and 31"}
	}
	if day > maxDay[month-1] {
		return MonthDay{}, ValidationError{
			Field:  "day",
			Value:  strconv.Itoa(day),
			Reason: fmt.Sprintf("too big for month %d (max %d)", month, maxDay[month-1]),
		}
	}
	return MonthDay{month: uint8(month), day: uint8(day)}, nil
}

// NewWithOffset is New followed by WithOffset.
func NewWithOffset(month, day int, offset Offset) (MonthDay, error) {
	md, err := New(month, day)
	if err != nil {
		return MonthDay{}, err
	}
	return md.WithOffset(offset), nil
}

// WithOffset returns a copy of m carrying offset.
func (m MonthDay) WithOffset(offset Offset) MonthDay {
	m.offset = offset
	m.hasOffset = true
	return m
}

func (m MonthDay) Month() time.Month {
	return time.Month(m.month)
}

func (m MonthDay) Day() int {
	return int(m.day)
}

// Offset returns the offset and whether one is present.
func (m MonthDay) Offset() (Offset, bool) {
	return m.offset, m.hasOffset
}

// IsZero reports whether m was never constructed.
func (m MonthDay) IsZero() bool {
	return m.month == 0
}

// String renders --MM-DD with an optional +HH:MM suffix.
func (m MonthDay) String() string {
	s := fmt.Sprintf("--%02d-%02d", m.month, m.day)
	if m.hasOffset {
		s += m.offset.String()
	}
	return s
}

func (m MonthDay) MarshalText() ([]byte, error) {
	if m.IsZero() {
		return nil, ValidationError{Field: "monthday", Value: "", Reason: "zero value"}
	}
	return []byte(m.String()), nil
}

func (m *MonthDay) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Parse reads --MM-DD optionally followed by Z or +-HH:MM.
func Parse(s string) (MonthDay, error) {
	raw := strings.TrimSpace(s)
	if len(raw) < 7 || raw[0:2] != "--" || raw[4] != '-' {
		return MonthDay{}, ValidationError{Field: "text", Value: s, Reason: "expected --MM-DD"}
	}
	month, err := twoDigits(raw[2:4])
	if err != nil {
		return MonthDay{}, ValidationError{Field: "month", Value: raw[2:4], Reason: "not a two digit number"}
	}
	day, err := twoDigits(raw[5:7])
	if err != nil {
		return MonthDay{}, ValidationError{Field: "day", Value: raw[5:7], Reason: "not a two digit number"}
	}
	md, err := New(month, day)
	if err != nil {
		return MonthDay{}, err
	}
	tz := raw[7:]
	if tz == "" {
		return md, nil
	}
	offset, err := parseOffset(tz)
	if err != nil {
		return MonthDay{}, err
	}
	return md.WithOffset(offset), nil
}

func parseOffset(tz string) (Offset, error) {
	if tz == "Z" {
		return UTC, nil
	}
	if len(tz) != 6 || (tz[0] != '+' && tz[0] != '-') || tz[3] != ':' {
		return Offset{}, ValidationError{Field: "offset", Value: tz, Reason: "expected Z or +-HH:MM"}
	}
	hours, err := twoDigits(tz[1:3])
	if err != nil {
		return Offset{}, ValidationError{Field: "offset", Value: tz, Reason: "bad hours"}
	}
	minutes, err := twoDigits(tz[4:6])
	if err != nil || minutes > 59 {
		return Offset{}, ValidationError{Field: "offset", Value: tz, Reason: "bad minutes"}
	}
	total := hours*60 + minutes
	if tz[0] == '-' {
		total = -total
	}
	return OffsetMinutes(total)
}

func twoDigits(s string) (int, error) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, strconv.ErrSyntax
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), nil
}

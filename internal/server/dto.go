package server

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// flexID accepts ids sent as JSON strings or numbers. Numbers are taken
// verbatim so large snowflake ids keep every digit.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*f = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		s, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}
	if _, err := strconv.ParseUint(raw, 10, 64); err != nil {
		return fmt.Errorf("invalid id %s", raw)
	}
	*f = flexID(raw)
	return nil
}

func (f flexID) String() string {
	return string(f)
}

// flexFloat accepts numbers and numeric strings. Null and "" leave it unset.
type flexFloat struct {
	value float64
	set   bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*f = flexFloat{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*f = flexFloat{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %s", raw)
	}
	*f = flexFloat{value: v, set: true}
	return nil
}

func (f flexFloat) ptr() *float64 {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// intPtr rejects fractional values.
func (f flexFloat) intPtr() (*int, bool) {
	if !f.set {
		return nil, true
	}
	if f.value != math.Trunc(f.value) {
		return nil, false
	}
	v := int(f.value)
	return &v, true
}

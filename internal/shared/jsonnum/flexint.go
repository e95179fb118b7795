// Package jsonnum decodes integers sent either as JSON numbers or numeric strings.
package jsonnum

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotInteger is returned when a value is neither an integral number nor a numeric string.
var ErrNotInteger = errors.New("value is not an integer")

// FlexInt accepts 3, 3.0 and "3". Null leaves Set false.
type FlexInt struct {
	Value int64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexInt{}
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*f = FlexInt{}
			return nil
		}
	}
	v, err := parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotInteger, string(data))
	}
	*f = FlexInt{Value: v, Set: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// IntPtr returns nil when the value was absent.
func (f FlexInt) IntPtr() *int {
	if !f.Set {
		return nil
	}
	v := int(f.Value)
	return &v
}

func parse(raw string) (int64, error) {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	fv, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(fv) || math.IsInf(fv, 0) || fv != math.Trunc(fv) || math.Abs(fv) >= math.MaxInt64 {
		return 0, ErrNotInteger
	}
	return int64(fv), nil
}

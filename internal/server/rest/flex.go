package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// flexString accepts a JSON string or number. Dialog ids leave the server
// as strings but browser code often sends them back as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// flexInt accepts a JSON integer or a string holding one. Set is false when
// the value was absent, null or an empty string.
type flexInt struct {
	Value int
	Set   bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
	}

	if n, err := strconv.Atoi(raw); err == nil {
		*f = flexInt{Value: n, Set: true}
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil && v == math.Trunc(v) && math.Abs(v) < math.MaxInt32 {
		*f = flexInt{Value: int(v), Set: true}
		return nil
	}
	return fmt.Errorf("expected integer, got %s", b)
}

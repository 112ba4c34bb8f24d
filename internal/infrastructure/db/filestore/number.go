package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// legacyInt is an int64 that also decodes integral floats such as 125.0.
// Older stores wrote balances through floor(), which yields a float.
type legacyInt int64

func (n *legacyInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 1 && data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("filestore: number %s: %w", data, err)
		}
		data = []byte(unquoted)
	}

	num := json.Number(data)
	if v, err := num.Int64(); err == nil {
		*n = legacyInt(v)
		return nil
	}
	f, err := num.Float64()
	if err != nil {
		return fmt.Errorf("filestore: number %s: %w", data, err)
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("filestore: number %s is not an integer", data)
	}
	*n = legacyInt(f)
	return nil
}

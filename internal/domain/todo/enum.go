package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errUnknownEnumName = errors.New("unknown name")

// parseEnum resolves a case-insensitive name from names (numbered from
// first) or a plain integer. Integers are returned as-is so the aggregate can
// reject undefined values with its own error.
func parseEnum(raw string, names []string, first int) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	for i, name := range names {
		if strings.EqualFold(name, raw) {
			return first + i, nil
		}
	}
	return 0, fmt.Errorf("%w %q", errUnknownEnumName, raw)
}

func unmarshalEnumJSON(data []byte, names []string, first int) (int, error) {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, err
	}
	return parseEnum(s, names, first)
}

func scanEnumText(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case nil:
		return "", errors.New("null value")
	default:
		return "", fmt.Errorf("unsupported type %T", src)
	}
}

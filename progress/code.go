package progress

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidCode = errors.New("invalid save code")

type saveCode struct {
	L json.RawMessage `json:"l"`
}

// Encode builds a portable save code: base64 of {"l": unlocked}.
func Encode(unlocked int) string {
	data, _ := json.Marshal(map[string]int{"l": unlocked})
	return base64.StdEncoding.EncodeToString(data)
}

// Decode accepts only codes carrying a positive whole unlocked level.
func Decode(code string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	var sc saveCode
	if err := json.Unmarshal(raw, &sc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	n, err := strconv.Atoi(string(sc.L))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: level %s", ErrInvalidCode, sc.L)
	}
	return n, nil
}

package booking

import (
	"encoding/json"
	"strings"
)

// DecodeSeatCode decodes a persisted seat_code value into the seat
// identifiers it claims.  The persisted format changed twice over the
// system's history, so three decode paths are live:
//
//  1. JSON array of identifiers (current format).
//  2. Comma-separated identifiers, whitespace trimmed.
//  3. A bare single identifier (oldest format).
//
// All three must be preserved or historical bookings silently appear
// unbooked.  Malformed or empty input decodes to an empty slice; this
// function never fails.
func DecodeSeatCode(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, id := range arr {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
		return out
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return []string{raw}
}

// EncodeSeatCode encodes a seat identifier set for persistence.  All
// new writes use the JSON array format exclusively; the older comma
// and bare-string encodings exist only on the read path.
func EncodeSeatCode(seatIDs []string) (string, error) {
	b, err := json.Marshal(seatIDs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

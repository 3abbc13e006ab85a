package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// localDateTimeLayout - ISO-8601 без часового пояса, как отдают .NET/EF сервисы.
const localDateTimeLayout = "2006-01-02T15:04:05.999999999"

var timestampLayouts = []string{time.RFC3339Nano, localDateTimeLayout}

// Timestamp - время из API. Принимает RFC 3339 и ISO-8601 без зоны (считается UTC),
// в JSON всегда пишется как RFC 3339.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Time.Format(time.RFC3339Nano))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		ts.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			ts.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format %q", raw)
}

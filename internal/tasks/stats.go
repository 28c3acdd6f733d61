// ABOUTME: Statistics aggregation over the full task set
// ABOUTME: DayCounts keeps first-occurrence order of days when encoded as JSON

package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Statistics summarises the current tasks.
type Statistics struct {
	Total          int       `json:"total"`
	Completed      int       `json:"completed"`
	Pending        int       `json:"pending"`
	CompletionRate int       `json:"completionRate"`
	ByDay          DayCounts `json:"byDay"`
}

// DayCount is the number of tasks on one day.
type DayCount struct {
	Day   string
	Count int
}

// DayCounts is an ordered day -> count mapping.
// It encodes as a JSON object whose keys keep the slice order.
type DayCounts []DayCount

// MarshalJSON writes the counts as an object in slice order.
func (d DayCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, dc := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(dc.Day)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", dc.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, keeping keys in document order.
func (d *DayCounts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("byDay: expected object, got %v", tok)
	}

	counts := DayCounts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		day, ok := tok.(string)
		if !ok {
			return fmt.Errorf("byDay: expected string key, got %v", tok)
		}
		var n int
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("byDay[%q]: %w", day, err)
		}
		counts = append(counts, DayCount{Day: day, Count: n})
	}
	*d = counts
	return nil
}

// completionRate is completed/total as a rounded percentage, 0 for no tasks.
func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

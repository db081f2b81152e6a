package battle

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSONLines writes each log entry as one JSON object per line.
func WriteJSONLines(w io.Writer, entries []LogEntry) error {
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("battle: cannot encode log entry %d: %w", e.Step, err)
		}
	}
	return nil
}

// FormatEntry renders a log entry as a single human-readable line.
func FormatEntry(e LogEntry) string {
	return fmt.Sprintf("#%-3d %-8s %s eats %s (+%d) [slot %d]",
		e.Step, e.Team, e.Kid, e.Food, e.Stars, e.SlotIndex+1)
}

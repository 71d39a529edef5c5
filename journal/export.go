package journal

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"
)

// csvHeader is the fixed column layout used by WriteCSV and ReadCSV.
var csvHeader = []string{"seq", "id", "kind", "at", "from", "to", "amount", "detail"}

// WriteCSV writes events as CSV with a header row. Amounts are decimal
// strings, timestamps RFC 3339 with nanoseconds, Detail a JSON object.
func WriteCSV(w io.Writer, events []*Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, ev := range events {
		amount := ""
		if ev.Amount != nil {
			amount = ev.Amount.Dec()
		}
		detail := ""
		if len(ev.Detail) > 0 {
			raw, err := json.Marshal(ev.Detail)
			if err != nil {
				return fmt.Errorf("encoding detail for seq %d: %w", ev.Seq, err)
			}
			detail = string(raw)
		}
		record := []string{
			strconv.FormatUint(ev.Seq, 10),
			ev.ID,
			string(ev.Kind),
			ev.At.Format(time.RFC3339Nano),
			ev.From.Hex(),
			ev.To.Hex(),
			amount,
			detail,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing seq %d: %w", ev.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSONL writes one JSON object per line, in sequence order.
func WriteJSONL(w io.Writer, events []*Event) error {
	enc := json.NewEncoder(w)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("writing seq %d: %w", ev.Seq, err)
		}
	}
	return nil
}

// ReadJSONL reads events written by WriteJSONL. Events are returned in
// sequence order regardless of input order. Blank lines are skipped.
func ReadJSONL(r io.Reader) ([]*Event, error) {
	var events []*Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		ev := &Event{}
		if err := json.Unmarshal(line, ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", lineNum+1, err)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Seq < events[j].Seq })
	return events, nil
}

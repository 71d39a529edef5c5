package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-ledger/journal"
)

func export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	journalPath := fs.String("journal", "", "SQLite journal file to export (required)")
	format := fs.String("format", "jsonl", "output format: jsonl or csv")
	after := fs.Uint64("after", 0, "only export events with seq greater than this")
	limit := fs.Int("limit", 0, "maximum number of events (0 for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *journalPath == "" {
		fs.Usage()
		return fmt.Errorf("export: -journal is required")
	}

	store, err := journal.NewSQLiteStore(*journalPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	events, err := store.Read(context.Background(), *after, *limit)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	switch *format {
	case "jsonl":
		return journal.WriteJSONL(os.Stdout, events)
	case "csv":
		return journal.WriteCSV(os.Stdout, events)
	default:
		return fmt.Errorf("export: unknown format %q", *format)
	}
}

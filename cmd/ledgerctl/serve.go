package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/pflow-xyz/go-ledger/account"
	"github.com/pflow-xyz/go-ledger/journal"
	"github.com/pflow-xyz/go-ledger/token"
)

// serveConfig is read from the environment.
type serveConfig struct {
	Addr          string `env:"LEDGER_ADDR" envDefault:":8080"`
	Name          string `env:"LEDGER_NAME" envDefault:"Ledger"`
	Symbol        string `env:"LEDGER_SYMBOL" envDefault:"LGR"`
	Decimals      uint8  `env:"LEDGER_DECIMALS" envDefault:"18"`
	ChainID       uint64 `env:"LEDGER_CHAIN_ID" envDefault:"1337"`
	Self          string `env:"LEDGER_SELF_ADDRESS,required"`
	Cap           string `env:"LEDGER_CAP,required"`
	Admin         string `env:"LEDGER_ADMIN,required"`
	InitialSupply string `env:"LEDGER_INITIAL_SUPPLY" envDefault:"0"`
	JournalPath   string `env:"LEDGER_JOURNAL_PATH"`
}

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ledgerctl serve

Serve the ledger read surface and journal over HTTP. Configuration comes
from the environment:

  LEDGER_ADDR            listen address (default :8080)
  LEDGER_NAME            ledger name (default Ledger)
  LEDGER_SYMBOL          display symbol (default LGR)
  LEDGER_DECIMALS        display decimals (default 18)
  LEDGER_CHAIN_ID        signature domain chain id (default 1337)
  LEDGER_SELF_ADDRESS    ledger's own address (required)
  LEDGER_CAP             supply ceiling in base units (required)
  LEDGER_ADMIN           initial administrator address (required)
  LEDGER_INITIAL_SUPPLY  minted to the admin at creation (default 0)
  LEDGER_JOURNAL_PATH    SQLite journal file (default in memory)

Endpoints:
  GET /info              name, symbol, cap, supply, pause state, version
  GET /balance?addr=0x.. balance and nonce of one account
  GET /events?after=N    journal tail
`)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "ledgerctl").Logger()

	var cfg serveConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	selfAddr, err := account.HexToAddress(cfg.Self)
	if err != nil {
		return fmt.Errorf("LEDGER_SELF_ADDRESS: %w", err)
	}
	adminAddr, err := account.HexToAddress(cfg.Admin)
	if err != nil {
		return fmt.Errorf("LEDGER_ADMIN: %w", err)
	}
	supplyCap, err := uint256.FromDecimal(cfg.Cap)
	if err != nil {
		return fmt.Errorf("LEDGER_CAP: %w", err)
	}
	initial, err := uint256.FromDecimal(cfg.InitialSupply)
	if err != nil {
		return fmt.Errorf("LEDGER_INITIAL_SUPPLY: %w", err)
	}

	var store journal.Store
	if cfg.JournalPath != "" {
		if store, err = journal.NewSQLiteStore(cfg.JournalPath); err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
	}
	log := journal.NewLog(store)
	defer log.Close()

	st, err := token.NewState(token.Config{
		Name:          cfg.Name,
		Symbol:        cfg.Symbol,
		Decimals:      cfg.Decimals,
		ChainID:       cfg.ChainID,
		Self:          selfAddr,
		Cap:           supplyCap,
		Admin:         adminAddr,
		InitialSupply: initial,
	})
	if err != nil {
		return err
	}
	tok := token.New(st, token.WithJournal(log))
	if err := tok.Init(); err != nil {
		return err
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"name":     tok.Name(),
			"symbol":   tok.Symbol(),
			"decimals": tok.Decimals(),
			"cap":      tok.Cap().Dec(),
			"supply":   tok.TotalSupply().Dec(),
			"paused":   tok.Paused(),
			"version":  st.Version,
		})
	})

	mux.HandleFunc("/balance", func(w http.ResponseWriter, r *http.Request) {
		addr, err := account.HexToAddress(r.URL.Query().Get("addr"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{
			"addr":    addr.Hex(),
			"balance": tok.BalanceOf(addr).Dec(),
			"nonce":   tok.Nonce(addr),
		})
	})

	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		after, _ := strconv.ParseUint(r.URL.Query().Get("after"), 10, 64)
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		events, err := log.Read(r.Context(), after, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, events)
	})

	logger.Info().
		Str("addr", cfg.Addr).
		Str("cap", supplyCap.Dec()).
		Str("admin", adminAddr.Hex()).
		Msg("serving ledger")
	return http.ListenAndServe(cfg.Addr, mux)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

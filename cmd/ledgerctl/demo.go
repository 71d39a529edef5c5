package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/account"
	"github.com/pflow-xyz/go-ledger/journal"
	"github.com/pflow-xyz/go-ledger/relay"
	"github.com/pflow-xyz/go-ledger/sigauth"
	"github.com/pflow-xyz/go-ledger/token"
	"github.com/pflow-xyz/go-ledger/upgrade"
)

func demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	journalPath := fs.String("journal", "", "Write the journal to this SQLite file (default: in memory)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ledgerctl demo [options]

Create a one-million-unit capped ledger, mint to the cap, exercise the
pause gate, consume an offline permit and a relayed transfer, then swap
the logic version. Prints each step and the resulting journal.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	var store journal.Store
	if *journalPath != "" {
		s, err := journal.NewSQLiteStore(*journalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		store = s
	}
	log := journal.NewLog(store)
	defer log.Close()

	admin := account.BytesToAddress([]byte{0x01})
	self := account.BytesToAddress([]byte{0xff})
	fwdAddr := account.BytesToAddress([]byte{0xf0})

	st, err := token.NewState(token.Config{
		Name:          "Demo Ledger",
		Symbol:        "DEMO",
		Decimals:      18,
		ChainID:       1337,
		Self:          self,
		Cap:           uint256.NewInt(1_000_000),
		Admin:         admin,
		InitialSupply: uint256.NewInt(100_000),
	})
	if err != nil {
		return err
	}
	tok := token.New(st, token.WithJournal(log))
	proxy, err := upgrade.NewProxy(st, tok, upgrade.WithJournal(log))
	if err != nil {
		return err
	}
	fmt.Printf("created ledger %s (cap %s, supply %s, logic %s)\n",
		tok.Name(), tok.Cap(), tok.TotalSupply(), proxy.Version())

	userKey, err := sigauth.GenerateKey()
	if err != nil {
		return err
	}
	user := sigauth.AddressOf(&userKey.PublicKey)
	fmt.Printf("generated user %s\n", user)

	// Mint to the cap, then show the ceiling holding.
	if err := tok.Mint(admin, user, uint256.NewInt(900_000)); err != nil {
		return err
	}
	fmt.Printf("minted 900000 to user, supply %s\n", tok.TotalSupply())
	if err := tok.Mint(admin, user, uint256.NewInt(1)); err != nil {
		fmt.Printf("mint over cap refused: %v\n", err)
	}

	// Pause blocks transfers; unpause restores them.
	if err := tok.Pause(admin); err != nil {
		return err
	}
	if err := tok.Transfer(user, admin, uint256.NewInt(10)); err != nil {
		fmt.Printf("transfer while paused refused: %v\n", err)
	}
	if err := tok.Unpause(admin); err != nil {
		return err
	}
	if err := tok.Transfer(user, admin, uint256.NewInt(10)); err != nil {
		return err
	}
	fmt.Printf("transfer after unpause ok, user balance %s\n", tok.BalanceOf(user))

	// Offline permit: the signature is the authorization.
	spender := account.BytesToAddress([]byte{0x02})
	deadline := uint64(1 << 40)
	structHash := sigauth.PermitHash(user, spender, uint256.NewInt(500), tok.Nonce(user), deadline)
	sig, err := sigauth.Sign(sigauth.Digest(tok.Domain(), structHash), userKey)
	if err != nil {
		return err
	}
	if err := tok.Permit(user, spender, uint256.NewInt(500), deadline, sig); err != nil {
		return err
	}
	fmt.Printf("permit consumed, allowance %s, user nonce %d\n",
		tok.Allowance(user, spender), tok.Nonce(user))

	// Relayed transfer through the trusted forwarder.
	fwd := relay.New(fwdAddr, st, relay.WithJournal(log))
	relay.BindLedger(fwd, tok)
	if err := tok.SetTrustedForwarder(admin, fwdAddr); err != nil {
		return err
	}
	data, err := relay.EncodeCall("transfer", relay.TransferArgs(admin, uint256.NewInt(3)))
	if err != nil {
		return err
	}
	req := &relay.ForwardRequest{
		From:     user,
		To:       self,
		Value:    new(uint256.Int),
		Gas:      100_000,
		Nonce:    tok.Nonce(user),
		Deadline: deadline,
		Data:     data,
	}
	if req.Signature, err = sigauth.Sign(fwd.Digest(req), userKey); err != nil {
		return err
	}
	if err := fwd.Execute(req); err != nil {
		return err
	}
	fmt.Printf("relayed transfer executed, user nonce %d\n", tok.Nonce(user))
	if err := fwd.Execute(req); err != nil {
		fmt.Printf("replay refused: %v\n", err)
	}

	// Swap the logic version; state survives untouched.
	if err := proxy.Upgrade(admin, &demoV2{Token: tok}, nil); err != nil {
		return err
	}
	fmt.Printf("upgraded to logic %s, supply still %s\n", proxy.Version(), tok.TotalSupply())

	events, err := log.Read(context.Background(), 0, 0)
	if err != nil {
		return err
	}
	fmt.Printf("\njournal (%d events):\n", len(events))
	for _, ev := range events {
		if ev.Amount != nil {
			fmt.Printf("  %3d %-18s %s -> %s  %s\n", ev.Seq, ev.Kind, ev.From, ev.To, ev.Amount.Dec())
		} else {
			fmt.Printf("  %3d %-18s %v\n", ev.Seq, ev.Kind, ev.Detail)
		}
	}
	return nil
}

// demoV2 is a second logic version used by the walkthrough.
type demoV2 struct {
	*token.Token
}

func (d *demoV2) Version() string { return "2.0.0" }

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-ledger/sigauth"
)

func keygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ledgerctl keygen

Generate a secp256k1 key pair and print the ledger address it controls.
The private key is printed to stdout; store it somewhere safe.
`)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	priv, err := sigauth.GenerateKey()
	if err != nil {
		return fmt.Errorf("keygen: %w", err)
	}

	fmt.Printf("address:     %s\n", sigauth.AddressOf(&priv.PublicKey))
	fmt.Printf("private key: %s\n", hex.EncodeToString(priv.Bytes()))
	return nil
}

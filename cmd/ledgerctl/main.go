package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		if err := demo(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "keygen":
		if err := keygen(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := serve(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := export(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "prove":
		if err := proveTransfer(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ledgerctl - capped value ledger with roles, pause, permits and relayed calls

Usage:
  ledgerctl <command> [options]

Commands:
  demo     Run the cap/pause/permit/relay walkthrough on a fresh ledger
  keygen   Generate a secp256k1 key pair and print its ledger address
  serve    Serve the ledger read surface and journal over HTTP
  export   Dump a SQLite journal as JSONL or CSV
  prove    Generate and verify a conservation proof for one transfer
  help     Show this help

Run 'ledgerctl <command> -h' for command options.`)
}

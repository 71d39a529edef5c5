package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/prove"
)

func proveTransfer(args []string) error {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	fromBalance := fs.String("from-balance", "", "sender balance before the transfer (required)")
	toBalance := fs.String("to-balance", "0", "recipient balance before the transfer")
	amount := fs.String("amount", "", "transferred amount (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fromBalance == "" || *amount == "" {
		fs.Usage()
		return fmt.Errorf("prove: -from-balance and -amount are required")
	}

	from, err := uint256.FromDecimal(*fromBalance)
	if err != nil {
		return fmt.Errorf("prove: -from-balance: %w", err)
	}
	to, err := uint256.FromDecimal(*toBalance)
	if err != nil {
		return fmt.Errorf("prove: -to-balance: %w", err)
	}
	amt, err := uint256.FromDecimal(*amount)
	if err != nil {
		return fmt.Errorf("prove: -amount: %w", err)
	}
	if amt.Gt(from) {
		return fmt.Errorf("prove: amount %s exceeds sender balance %s", amt.Dec(), from.Dec())
	}

	fmt.Println("Compiling conservation circuit (one-time setup)...")
	start := time.Now()
	prover, err := prove.NewProver()
	if err != nil {
		return err
	}
	fmt.Printf("Setup done in %s\n", time.Since(start).Round(time.Millisecond))

	start = time.Now()
	proof, public, err := prover.Prove(prove.TransferWitness(from, to, amt))
	if err != nil {
		return err
	}
	fmt.Printf("Proof generated in %s\n", time.Since(start).Round(time.Millisecond))

	if err := prover.Verify(proof, public); err != nil {
		return fmt.Errorf("proof did not verify: %w", err)
	}
	fmt.Printf("Verified: transfer of %s conserves value (%s -> %s, recipient %s -> %s)\n",
		amt.Dec(),
		from.Dec(), new(uint256.Int).Sub(from, amt).Dec(),
		to.Dec(), new(uint256.Int).Add(to, amt).Dec())
	return nil
}

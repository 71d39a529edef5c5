// Package prove generates groth16 proofs that a transfer step conserved
// value: the sender lost exactly what the receiver gained and had the
// balance to cover it. The proof commits to the before/after balances and
// the amount as public inputs, so an external verifier can check a recorded
// transfer without re-running the ledger.
package prove

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/holiman/uint256"
)

// ConservationCircuit constrains one balance move. All values are public:
// the circuit is a checkable receipt, not a privacy layer. Balances and
// amounts must fit the BN254 scalar field, which every cap-bounded ledger
// below ~2^253 satisfies.
type ConservationCircuit struct {
	FromBefore frontend.Variable `gnark:",public"`
	ToBefore   frontend.Variable `gnark:",public"`
	FromAfter  frontend.Variable `gnark:",public"`
	ToAfter    frontend.Variable `gnark:",public"`
	Amount     frontend.Variable `gnark:",public"`
}

// Define declares the conservation constraints.
func (c *ConservationCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(api.Add(c.FromAfter, c.Amount), c.FromBefore)
	api.AssertIsEqual(c.ToAfter, api.Add(c.ToBefore, c.Amount))
	api.AssertIsLessOrEqual(c.Amount, c.FromBefore)
	return nil
}

// Prover holds the compiled conservation circuit and its keys.
type Prover struct {
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
	vk groth16.VerifyingKey
}

// NewProver compiles the circuit and runs the trusted setup. Expensive;
// build one and reuse it.
func NewProver() (*Prover, error) {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &ConservationCircuit{})
	if err != nil {
		return nil, fmt.Errorf("circuit compilation failed: %w", err)
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}
	return &Prover{cs: cs, pk: pk, vk: vk}, nil
}

// TransferWitness builds the assignment for a transfer of amount given the
// balances before the move.
func TransferWitness(fromBefore, toBefore, amount *uint256.Int) *ConservationCircuit {
	fromAfter := new(uint256.Int).Sub(fromBefore, amount)
	toAfter := new(uint256.Int).Add(toBefore, amount)
	return &ConservationCircuit{
		FromBefore: fromBefore.ToBig(),
		ToBefore:   toBefore.ToBig(),
		FromAfter:  fromAfter.ToBig(),
		ToAfter:    toAfter.ToBig(),
		Amount:     amount.ToBig(),
	}
}

// Prove generates a proof for the assignment and returns it with the public
// witness a verifier needs.
func (p *Prover) Prove(assignment *ConservationCircuit) (groth16.Proof, witness.Witness, error) {
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, fmt.Errorf("witness creation failed: %w", err)
	}
	proof, err := groth16.Prove(p.cs, p.pk, w)
	if err != nil {
		return nil, nil, fmt.Errorf("proof generation failed: %w", err)
	}
	public, err := w.Public()
	if err != nil {
		return nil, nil, fmt.Errorf("public witness extraction failed: %w", err)
	}
	return proof, public, nil
}

// Verify checks a proof against a public witness.
func (p *Prover) Verify(proof groth16.Proof, public witness.Witness) error {
	return groth16.Verify(proof, p.vk, public)
}

package prove

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestConservationProof(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}

	p, err := NewProver()
	if err != nil {
		t.Fatalf("prover setup failed: %v", err)
	}

	t.Run("ValidTransferVerifies", func(t *testing.T) {
		assignment := TransferWitness(uint256.NewInt(1_000), uint256.NewInt(50), uint256.NewInt(123))
		proof, public, err := p.Prove(assignment)
		if err != nil {
			t.Fatalf("prove failed: %v", err)
		}
		if err := p.Verify(proof, public); err != nil {
			t.Errorf("valid proof rejected: %v", err)
		}
	})

	t.Run("OverdraftUnprovable", func(t *testing.T) {
		// Spending more than the sender holds wraps FromAfter around the
		// field, which the range constraint rejects.
		assignment := TransferWitness(uint256.NewInt(10), uint256.NewInt(0), uint256.NewInt(11))
		if _, _, err := p.Prove(assignment); err == nil {
			t.Error("overdraft transfer produced a proof")
		}
	})

	t.Run("TamperedPublicWitnessFails", func(t *testing.T) {
		honest := TransferWitness(uint256.NewInt(1_000), uint256.NewInt(50), uint256.NewInt(123))
		proof, _, err := p.Prove(honest)
		if err != nil {
			t.Fatalf("prove failed: %v", err)
		}

		// A different public statement must not verify under the proof.
		tampered := TransferWitness(uint256.NewInt(1_000), uint256.NewInt(50), uint256.NewInt(124))
		_, public, err := p.Prove(tampered)
		if err != nil {
			t.Fatalf("prove failed: %v", err)
		}
		if err := p.Verify(proof, public); err == nil {
			t.Error("proof verified against a tampered public witness")
		}
	})
}

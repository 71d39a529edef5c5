package sigauth

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/secp256k1/ecdsa"

	"github.com/pflow-xyz/go-ledger/account"
)

// Errors returned by signature verification. Both map to the authorization
// error kind.
var (
	ErrInvalidSignature   = errors.New("sigauth: signature does not recover to the expected signer")
	ErrMalformedSignature = errors.New("sigauth: signature must be 65 bytes r || s || v")
)

// SignatureLength is the wire size of a recoverable signature:
// 32-byte r, 32-byte s, 1-byte recovery id.
const SignatureLength = 65

// GenerateKey creates a fresh secp256k1 key pair.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(rand.Reader)
}

// AddressOf derives the 20-byte address of a public key: the trailing
// twenty bytes of keccak256(x || y).
func AddressOf(pub *ecdsa.PublicKey) account.Address {
	x := pub.A.X.Bytes()
	y := pub.A.Y.Bytes()
	h := Keccak256(x[:], y[:])
	return account.BytesToAddress(h[12:])
}

// Sign produces a recoverable signature over a 32-byte digest.
func Sign(digest [32]byte, priv *ecdsa.PrivateKey) ([]byte, error) {
	v, r, s, err := priv.SignForRecover(digest[:], nil)
	if err != nil {
		return nil, err
	}

	sig := make([]byte, SignatureLength)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:64])
	sig[64] = byte(v)
	return sig, nil
}

// Recover returns the address whose key produced sig over digest.
// It accepts recovery ids 0/1 as well as the legacy 27/28 encoding.
func Recover(digest [32]byte, sig []byte) (account.Address, error) {
	if len(sig) != SignatureLength {
		return account.Zero, ErrMalformedSignature
	}

	v := uint(sig[64])
	if v >= 27 {
		v -= 27
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])

	var pub ecdsa.PublicKey
	if err := pub.RecoverFrom(digest[:], v, r, s); err != nil {
		return account.Zero, ErrInvalidSignature
	}
	return AddressOf(&pub), nil
}

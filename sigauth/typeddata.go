// Package sigauth implements the signature authorization protocol:
// domain-separated structured-data hashing and secp256k1 signature
// recovery. Every function here is pure; nonce bookkeeping and state
// mutation belong to the callers (token.Permit, relay.Forwarder).
//
// The encoding follows the EIP-712 convention: a digest is
// keccak256(0x19 || 0x01 || domainSeparator || structHash), where the
// domain separator binds the signature to a system name, version string,
// chain identifier and the verifying module's own address. A fresh
// deployment of the verifying module therefore invalidates every
// previously signed request.
package sigauth

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/pflow-xyz/go-ledger/account"
)

// Domain identifies the verifying module instance.
type Domain struct {
	Name              string
	Version           string
	ChainID           uint64
	VerifyingContract account.Address
}

var (
	domainTypeHash  = Keccak256([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	permitTypeHash  = Keccak256([]byte("Permit(address owner,address spender,uint256 value,uint256 nonce,uint256 deadline)"))
	forwardTypeHash = Keccak256([]byte("ForwardRequest(address from,address to,uint256 value,uint256 gas,uint256 nonce,uint256 deadline,bytes data)"))
)

// Keccak256 hashes the concatenation of data with legacy Keccak-256.
func Keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// Separator computes the domain separator hash.
func (d Domain) Separator() [32]byte {
	name := Keccak256([]byte(d.Name))
	version := Keccak256([]byte(d.Version))
	chain := padUint64(d.ChainID)
	addr := padAddress(d.VerifyingContract)
	return Keccak256(domainTypeHash[:], name[:], version[:], chain[:], addr[:])
}

// Digest combines a domain separator and a struct hash into the signable
// digest.
func Digest(d Domain, structHash [32]byte) [32]byte {
	sep := d.Separator()
	return Keccak256([]byte{0x19, 0x01}, sep[:], structHash[:])
}

// PermitHash computes the struct hash for an offline allowance grant.
func PermitHash(owner, spender account.Address, value *uint256.Int, nonce, deadline uint64) [32]byte {
	o := padAddress(owner)
	s := padAddress(spender)
	v := value.Bytes32()
	n := padUint64(nonce)
	dl := padUint64(deadline)
	return Keccak256(permitTypeHash[:], o[:], s[:], v[:], n[:], dl[:])
}

// ForwardHash computes the struct hash for a relayed call authorization.
// Variable-length call data is folded in by hash, per the structured-data
// convention for dynamic types.
func ForwardHash(from, to account.Address, value *uint256.Int, gas, nonce, deadline uint64, data []byte) [32]byte {
	f := padAddress(from)
	t := padAddress(to)
	v := value.Bytes32()
	g := padUint64(gas)
	n := padUint64(nonce)
	dl := padUint64(deadline)
	dh := Keccak256(data)
	return Keccak256(forwardTypeHash[:], f[:], t[:], v[:], g[:], n[:], dl[:], dh[:])
}

// padAddress left-pads an address to a 32-byte word.
func padAddress(a account.Address) [32]byte {
	var out [32]byte
	copy(out[32-account.Length:], a[:])
	return out
}

// padUint64 encodes v as a big-endian 32-byte word.
func padUint64(v uint64) [32]byte {
	var out [32]byte
	binary.BigEndian.PutUint64(out[24:], v)
	return out
}

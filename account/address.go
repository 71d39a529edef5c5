// Package account defines the identity type shared by the ledger components.
// An Address is a 20-byte identifier; the zero value is the null identity
// used as the implicit counterparty of mint and burn.
package account

import (
	"encoding/hex"
	"errors"
	"strings"
)

// Length is the size of an address in bytes.
const Length = 20

// Address identifies an account.
type Address [Length]byte

// Zero is the null identity.
var Zero Address

var ErrInvalidAddress = errors.New("account: invalid address")

// IsZero reports whether a is the null identity.
func (a Address) IsZero() bool {
	return a == Zero
}

// Hex returns the 0x-prefixed lowercase hex encoding of a.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return a.Hex()
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, a[:])
	return b
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := HexToAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// HexToAddress parses a hex string, with or without a 0x prefix.
func HexToAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != Length*2 {
		return Zero, ErrInvalidAddress
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Zero, ErrInvalidAddress
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// BytesToAddress sets an address from b, right-aligned. Input longer than
// twenty bytes is truncated from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > Length {
		b = b[len(b)-Length:]
	}
	copy(a[Length-len(b):], b)
	return a
}

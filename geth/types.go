// Package geth provides an adapter layer between merkledrop's type system
// and go-ethereum's. This is the only package that imports go-ethereum
// directly; all other merkledrop packages use merkledrop/core/types.
//
// The builder CLI leans on it for strict parsing of externally supplied
// allocation files: checksummed addresses and hex or decimal amounts.
package geth

import (
	"fmt"

	gethcommon "github.com/ethereum/go-ethereum/common"
	gethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"

	"github.com/merkledrop/merkledrop/core/types"
)

// --- Address and Hash conversion (zero-copy, layout-compatible) ---

// ToGethAddress converts a merkledrop Address to a go-ethereum Address.
func ToGethAddress(a types.Address) gethcommon.Address {
	return gethcommon.Address(a)
}

// FromGethAddress converts a go-ethereum Address to a merkledrop Address.
func FromGethAddress(a gethcommon.Address) types.Address {
	return types.Address(a)
}

// ToGethHash converts a merkledrop Hash to a go-ethereum Hash.
func ToGethHash(h types.Hash) gethcommon.Hash {
	return gethcommon.Hash(h)
}

// FromGethHash converts a go-ethereum Hash to a merkledrop Hash.
func FromGethHash(h gethcommon.Hash) types.Hash {
	return types.Hash(h)
}

// --- Strict parsing for allocation files ---

// ParseAddress parses a 0x-prefixed, 40-hex-digit address. Unlike
// types.HexToAddress it rejects malformed input instead of padding it.
func ParseAddress(s string) (types.Address, error) {
	if !gethcommon.IsHexAddress(s) {
		return types.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return FromGethAddress(gethcommon.HexToAddress(s)), nil
}

// ParseAmount parses a decimal or 0x-prefixed hex amount into a uint256.
// Negative values and values wider than 256 bits are rejected.
func ParseAmount(s string) (*uint256.Int, error) {
	b, ok := gethmath.ParseBig256(s)
	if !ok || b == nil {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	u, overflow := uint256.FromBig(b)
	if overflow || b.Sign() < 0 {
		return nil, fmt.Errorf("amount %q out of range", s)
	}
	return u, nil
}

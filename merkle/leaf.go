// Package merkle implements the allowlist commitment subsystem: the leaf
// encoding for (recipient, amount) allocation entries, sorted-pair Merkle
// proof verification against a published root, and the offline tree builder
// that produces the root and per-recipient proofs.
package merkle

import (
	"github.com/holiman/uint256"

	"github.com/merkledrop/merkledrop/core/types"
	"github.com/merkledrop/merkledrop/crypto"
)

// leafSize is the byte length of the pre-image hashed into a leaf:
// the 20-byte recipient immediately followed by the 32-byte amount.
const leafSize = types.AddressLength + types.HashLength

// LeafHash encodes one allocation entry into its leaf value:
// keccak256(recipient || amount), with the amount in 32-byte big-endian
// form. The builder and the verifier must agree on this layout byte for
// byte; any divergence silently invalidates every proof.
//
// A nil amount encodes as zero.
func LeafHash(recipient types.Address, amount *uint256.Int) types.Hash {
	var buf [leafSize]byte
	copy(buf[:types.AddressLength], recipient[:])
	if amount != nil {
		b := amount.Bytes32()
		copy(buf[types.AddressLength:], b[:])
	}
	return crypto.Keccak256Hash(buf[:])
}

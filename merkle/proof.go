package merkle

import (
	"bytes"

	"github.com/merkledrop/merkledrop/core/types"
	"github.com/merkledrop/merkledrop/crypto"
)

// HashPair combines two sibling nodes into their parent:
// keccak256(min || max), the pair ordered by byte value. Sorting the pair
// makes the combination independent of left/right position, so proofs need
// no direction bits.
func HashPair(a, b types.Hash) types.Hash {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return crypto.Keccak256Hash(a[:], b[:])
	}
	return crypto.Keccak256Hash(b[:], a[:])
}

// VerifyProof reports whether the proof path connects the leaf to the root.
// The leaf is folded through the path in order, each step combining the
// running value with the next sibling via HashPair. A pure function: no
// state, total over any input. An empty proof is valid iff leaf == root;
// any malformed input simply yields false.
func VerifyProof(proof types.Proof, root, leaf types.Hash) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = HashPair(computed, sibling)
	}
	return computed == root
}

package types

import "github.com/holiman/uint256"

// Allocation is one entry of the distribution list: a recipient and the
// amount of base units reserved for it.
type Allocation struct {
	Recipient Address
	Amount    *uint256.Int
}

// Proof is the ordered sibling path that lets a verifier recompute the
// published root from one allocation leaf. Index 0 is the sibling closest
// to the leaf.
type Proof []Hash

// Clone returns a deep copy of the proof. Mutating the copy leaves the
// original untouched.
func (p Proof) Clone() Proof {
	if p == nil {
		return nil
	}
	out := make(Proof, len(p))
	copy(out, p)
	return out
}

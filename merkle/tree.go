package merkle

import (
	"errors"

	"github.com/merkledrop/merkledrop/core/types"
)

// ErrEmptyTree is returned when building a tree over zero allocations.
var ErrEmptyTree = errors.New("merkle: no allocations to commit to")

// Tree is the offline commitment builder. It hashes every allocation entry
// into a leaf, then folds adjacent pairs upward with the same sorted-pair
// rule the verifier uses. An unpaired node at the end of a level is promoted
// to the next level unchanged.
//
// The tree is built once and never mutated; reads are safe for concurrent
// use.
type Tree struct {
	entries []types.Allocation
	// levels[0] is the leaf level; the last level holds only the root.
	levels [][]types.Hash
}

// NewTree builds the commitment tree over the given allocation list.
// Entry order determines leaf order and therefore the root value.
func NewTree(entries []types.Allocation) (*Tree, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTree
	}

	leaves := make([]types.Hash, len(entries))
	for i, e := range entries {
		leaves[i] = LeafHash(e.Recipient, e.Amount)
	}

	levels := [][]types.Hash{leaves}
	for cur := leaves; len(cur) > 1; {
		next := make([]types.Hash, 0, (len(cur)+1)/2)
		for i := 0; i < len(cur); i += 2 {
			if i+1 < len(cur) {
				next = append(next, HashPair(cur[i], cur[i+1]))
			} else {
				next = append(next, cur[i]) // odd node, promoted
			}
		}
		levels = append(levels, next)
		cur = next
	}

	return &Tree{entries: entries, levels: levels}, nil
}

// Root returns the commitment value. For a single-entry tree the root is
// the leaf itself.
func (t *Tree) Root() types.Hash {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Len returns the number of committed allocation entries.
func (t *Tree) Len() int {
	return len(t.entries)
}

// Entry returns the allocation at leaf position i.
func (t *Tree) Entry(i int) (types.Allocation, error) {
	if i < 0 || i >= len(t.entries) {
		return types.Allocation{}, errors.New("merkle: entry index out of range")
	}
	return t.entries[i], nil
}

// Proof returns the sibling path for the leaf at position i, ordered from
// the leaf level upward. Levels where the node was promoted without a
// sibling contribute nothing to the path.
func (t *Tree) Proof(i int) (types.Proof, error) {
	if i < 0 || i >= len(t.entries) {
		return nil, errors.New("merkle: proof index out of range")
	}

	var proof types.Proof
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := i ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		i /= 2
	}
	return proof, nil
}

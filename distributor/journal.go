package distributor

import (
	"github.com/holiman/uint256"

	"github.com/merkledrop/merkledrop/core/types"
)

// journalEntry is a revertible ledger change.
type journalEntry interface {
	revert(d *Distributor)
}

// journal records the balance mutations of one batch push so the whole
// batch can be unwound if a later entry fails. Entries revert in reverse
// order, restoring the exact pre-batch state.
type journal struct {
	entries []journalEntry
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
}

func (j *journal) revert(d *Distributor) {
	for i := len(j.entries) - 1; i >= 0; i-- {
		j.entries[i].revert(d)
	}
	j.entries = j.entries[:0]
}

// balanceChange remembers an account's previous balance. existed
// distinguishes "balance was zero" from "account had no balance entry" so
// a revert does not leave ghost zero entries behind.
type balanceChange struct {
	addr    types.Address
	prev    *uint256.Int
	existed bool
}

func (ch balanceChange) revert(d *Distributor) {
	if ch.existed {
		d.balances[ch.addr] = ch.prev
	} else {
		delete(d.balances, ch.addr)
	}
}

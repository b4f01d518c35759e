// Package distributor implements the allocation ledger: a fixed, pre-minted
// supply of fungible units released to recipients through an owner-driven
// batch push and a self-service claim gated by a Merkle membership proof
// against the published allowlist commitment.
//
// All mutating operations (Claim, BatchPush, SetRoot, TransferOwnership)
// serialize behind one mutex and execute as single atomic units: each call
// either applies all of its effects or none, and no intermediate state is
// observable. Proof verification and leaf encoding are pure and run without
// the lock.
package distributor

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/merkledrop/merkledrop/core/types"
	"github.com/merkledrop/merkledrop/events"
	"github.com/merkledrop/merkledrop/log"
	"github.com/merkledrop/merkledrop/merkle"
	"github.com/merkledrop/merkledrop/metrics"
)

// DefaultSupply returns the reference supply of 10,000 whole units at 18
// decimals (10,000 x 10^18 base units).
func DefaultSupply() *uint256.Int {
	exp := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(18))
	return new(uint256.Int).Mul(uint256.NewInt(10_000), exp)
}

// Distributor is the distribution ledger. Balances, the claimed-set, the
// active commitment, and the owner role live in one struct guarded by one
// mutex, because claims touch balances and the claimed-set together and
// cross-map atomicity is a core invariant.
type Distributor struct {
	mu sync.Mutex

	owner    types.Address
	root     types.Hash // zero hash means no commitment published
	supply   *uint256.Int
	balances map[types.Address]*uint256.Int
	claimed  map[types.Address]struct{}

	bus *events.Bus
	log *log.Logger
}

// New creates a ledger holding the given total supply, all of it credited
// to the owner. The commitment starts unpublished and the claimed-set
// empty. bus may be nil, in which case a private bus is created.
func New(owner types.Address, supply *uint256.Int, bus *events.Bus) (*Distributor, error) {
	if owner.IsZero() {
		return nil, ErrInvalidOwner
	}
	if supply == nil {
		supply = new(uint256.Int)
	}
	if bus == nil {
		bus = events.NewBus(16)
	}

	d := &Distributor{
		owner:    owner,
		supply:   supply.Clone(),
		balances: make(map[types.Address]*uint256.Int),
		claimed:  make(map[types.Address]struct{}),
		bus:      bus,
		log:      log.Default().Module("distributor"),
	}
	d.balances[owner] = supply.Clone()
	return d, nil
}

// Bus returns the event bus the ledger publishes on.
func (d *Distributor) Bus() *events.Bus {
	return d.bus
}

// --- Claim protocol ---

// Claim releases the caller's allocation. Preconditions are checked in
// order, first failure wins: the caller has not claimed before, a
// commitment is published, the proof connects leaf(caller, amount) to it,
// and the owner's pool covers the amount. On success the caller joins the
// claimed-set permanently and the amount moves from the owner's pool to the
// caller, all under one lock acquisition.
func (d *Distributor) Claim(caller types.Address, amount *uint256.Int, proof types.Proof) error {
	if amount == nil {
		amount = new(uint256.Int)
	}

	d.mu.Lock()

	if _, ok := d.claimed[caller]; ok {
		d.mu.Unlock()
		return d.rejectClaim(caller, ErrAlreadyClaimed)
	}
	if d.root.IsZero() {
		d.mu.Unlock()
		return d.rejectClaim(caller, ErrNoRoot)
	}
	leaf := merkle.LeafHash(caller, amount)
	if !merkle.VerifyProof(proof, d.root, leaf) {
		d.mu.Unlock()
		return d.rejectClaim(caller, ErrInvalidProof)
	}
	pool := d.balances[d.owner]
	if pool == nil || pool.Lt(amount) {
		d.mu.Unlock()
		return d.rejectClaim(caller, ErrPoolExhausted)
	}

	owner := d.owner
	d.claimed[caller] = struct{}{}
	d.setBalance(owner, new(uint256.Int).Sub(d.balances[owner], amount))
	d.credit(caller, amount)
	claimedCount := len(d.claimed)

	d.mu.Unlock()

	metrics.ClaimsAccepted.Inc()
	metrics.ClaimedAccounts.Set(int64(claimedCount))
	d.log.Info("claim accepted", "account", caller, "amount", amount)
	d.bus.Publish(events.TypeTransfer, events.Transfer{From: owner, To: caller, Amount: amount.Clone()})
	d.bus.Publish(events.TypeClaimed, events.Claimed{Account: caller, Amount: amount.Clone()})
	return nil
}

func (d *Distributor) rejectClaim(caller types.Address, err error) error {
	metrics.ClaimsRejected.Inc()
	d.log.Debug("claim rejected", "account", caller, "reason", err)
	return err
}

// --- Batch push protocol ---

// BatchPush distributes amounts[i] to recipients[i], in order, from the
// owner's pool. Restricted to the owner. Balances mutate per entry inside a
// revertible journal; if any entry names the zero address or overdraws the
// pool, the journal unwinds every prior entry and the ledger is left
// exactly as it was (all-or-nothing).
func (d *Distributor) BatchPush(caller types.Address, recipients []types.Address, amounts []*uint256.Int) error {
	d.mu.Lock()

	if caller != d.owner {
		d.mu.Unlock()
		return ErrUnauthorized
	}
	if len(recipients) != len(amounts) {
		d.mu.Unlock()
		return fmt.Errorf("%w: %d recipients, %d amounts", ErrLengthMismatch, len(recipients), len(amounts))
	}

	owner := d.owner
	j := new(journal)
	transfers := make([]events.Transfer, 0, len(recipients))

	for i, to := range recipients {
		amount := amounts[i]
		if amount == nil {
			amount = new(uint256.Int)
		}
		if to.IsZero() {
			j.revert(d)
			d.mu.Unlock()
			return fmt.Errorf("%w: entry %d", ErrInvalidRecipient, i)
		}
		pool := d.balances[owner]
		if pool == nil || pool.Lt(amount) {
			j.revert(d)
			d.mu.Unlock()
			return fmt.Errorf("%w: entry %d needs %s", ErrPoolExhausted, i, amount)
		}

		j.append(d.balanceSnapshot(owner))
		d.setBalance(owner, new(uint256.Int).Sub(d.balances[owner], amount))
		j.append(d.balanceSnapshot(to))
		d.credit(to, amount)

		transfers = append(transfers, events.Transfer{From: owner, To: to, Amount: amount.Clone()})
	}

	d.mu.Unlock()

	metrics.BatchesCompleted.Inc()
	metrics.BatchEntriesPushed.Add(int64(len(transfers)))
	d.log.Info("batch push completed", "entries", len(transfers))
	for _, tr := range transfers {
		d.bus.Publish(events.TypeTransfer, tr)
	}
	d.bus.Publish(events.TypeBatchCompleted, events.BatchCompleted{Entries: len(transfers)})
	return nil
}

// --- Administration gate ---

// SetRoot publishes a new allowlist commitment, replacing the previous one
// unconditionally and instantaneously: proofs built against the old root
// fail verification from this call on. Setting the zero hash returns the
// ledger to the "no commitment published" state. Restricted to the owner.
// Replacing the root does not touch balances or the claimed-set.
func (d *Distributor) SetRoot(caller types.Address, root types.Hash) error {
	d.mu.Lock()
	if caller != d.owner {
		d.mu.Unlock()
		return ErrUnauthorized
	}
	prev := d.root
	d.root = root
	d.mu.Unlock()

	metrics.RootUpdates.Inc()
	d.log.Info("commitment updated", "prev", prev, "root", root)
	d.bus.Publish(events.TypeRootUpdated, events.RootUpdated{Prev: prev, Root: root})
	return nil
}

// TransferOwnership hands the owner role to newOwner. Restricted to the
// current owner; the zero address is rejected. The undistributed pool does
// not move with the role: claims and pushes draw from the new owner's
// balance afterwards, so the old owner normally pushes the pool across in
// the same administrative session.
func (d *Distributor) TransferOwnership(caller, newOwner types.Address) error {
	d.mu.Lock()
	if caller != d.owner {
		d.mu.Unlock()
		return ErrUnauthorized
	}
	if newOwner.IsZero() {
		d.mu.Unlock()
		return ErrInvalidOwner
	}
	prev := d.owner
	d.owner = newOwner
	d.mu.Unlock()

	d.log.Info("ownership transferred", "prev", prev, "owner", newOwner)
	d.bus.Publish(events.TypeOwnerChanged, events.OwnerChanged{Prev: prev, Owner: newOwner})
	return nil
}

// --- Read surface ---

// BalanceOf returns the current balance of addr.
func (d *Distributor) BalanceOf(addr types.Address) *uint256.Int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.balances[addr]; ok {
		return b.Clone()
	}
	return new(uint256.Int)
}

// Root returns the active commitment, or the zero hash when none is
// published.
func (d *Distributor) Root() types.Hash {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.root
}

// Owner returns the account currently holding the owner role.
func (d *Distributor) Owner() types.Address {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.owner
}

// TotalSupply returns the fixed total supply. The sum of all balances
// equals this value at every point in the ledger's life.
func (d *Distributor) TotalSupply() *uint256.Int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.supply.Clone()
}

// HasClaimed reports whether addr has already exercised its allocation.
// Membership is permanent.
func (d *Distributor) HasClaimed(addr types.Address) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.claimed[addr]
	return ok
}

// ClaimedCount returns the number of accounts that have claimed.
func (d *Distributor) ClaimedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.claimed)
}

// Pool returns the owner's balance, the source of claims and pushes.
func (d *Distributor) Pool() *uint256.Int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.balances[d.owner]; ok {
		return b.Clone()
	}
	return new(uint256.Int)
}

// --- Internal balance helpers (callers hold d.mu) ---

// balanceSnapshot captures addr's balance for the journal.
func (d *Distributor) balanceSnapshot(addr types.Address) balanceChange {
	prev, existed := d.balances[addr]
	return balanceChange{addr: addr, prev: prev, existed: existed}
}

func (d *Distributor) setBalance(addr types.Address, b *uint256.Int) {
	d.balances[addr] = b
}

func (d *Distributor) credit(addr types.Address, amount *uint256.Int) {
	cur, ok := d.balances[addr]
	if !ok {
		cur = new(uint256.Int)
	}
	d.balances[addr] = new(uint256.Int).Add(cur, amount)
}

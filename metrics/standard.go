package metrics

// Pre-defined metrics for the merkledrop distribution ledger. All metrics
// live in DefaultRegistry so they are globally accessible without passing a
// registry around.

var (
	// ClaimsAccepted counts claims that mutated the ledger.
	ClaimsAccepted = DefaultRegistry.Counter("drop.claims_accepted")
	// ClaimsRejected counts claims that failed a precondition.
	ClaimsRejected = DefaultRegistry.Counter("drop.claims_rejected")
	// BatchesCompleted counts successful batch pushes.
	BatchesCompleted = DefaultRegistry.Counter("drop.batches_completed")
	// BatchEntriesPushed counts individual entries applied by batch pushes.
	BatchEntriesPushed = DefaultRegistry.Counter("drop.batch_entries")
	// RootUpdates counts commitment replacements.
	RootUpdates = DefaultRegistry.Counter("drop.root_updates")
	// ClaimedAccounts tracks the size of the claimed-set.
	ClaimedAccounts = DefaultRegistry.Gauge("drop.claimed_accounts")
)

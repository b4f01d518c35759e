// Command merkledrop-build is the offline commitment builder. It consumes a
// JSON allocation list, builds the allowlist Merkle tree with the exact
// leaf encoding and sorted-pair rule the ledger verifies against, and emits
// the root plus one proof per recipient.
//
// Usage:
//
//	merkledrop-build -alloc allocations.json [-out proofs.json]
//
// The input is a JSON array of entries:
//
//	[{"recipient": "0x1111...", "amount": "100"}, ...]
//
// Amounts may be decimal or 0x-prefixed hex. The output carries the root,
// the entry count, and a proof object per recipient; proofs are meant to be
// delivered to recipients out of band, the root published on the ledger.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/merkledrop/merkledrop/core/types"
	"github.com/merkledrop/merkledrop/geth"
	"github.com/merkledrop/merkledrop/log"
	"github.com/merkledrop/merkledrop/merkle"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0"
var version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// allocEntry is one row of the input allocation file.
type allocEntry struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// proofEntry is the per-recipient output: the committed amount and the
// sibling path, leaf-adjacent sibling first.
type proofEntry struct {
	Amount string   `json:"amount"`
	Proof  []string `json:"proof"`
}

// distribution is the full builder output.
type distribution struct {
	Root   string                `json:"root"`
	Count  int                   `json:"count"`
	Proofs map[string]proofEntry `json:"proofs"`
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	fs := flag.NewFlagSet("merkledrop-build", flag.ContinueOnError)
	allocPath := fs.String("alloc", "", "path to the allocations JSON file (required)")
	outPath := fs.String("out", "", "output path for root and proofs (default: stdout)")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Printf("merkledrop-build %s\n", version)
		return 0
	}

	logger := log.Default().Module("builder")

	if *allocPath == "" {
		logger.Error("missing required -alloc flag")
		fs.Usage()
		return 2
	}

	entries, err := readAllocations(*allocPath)
	if err != nil {
		logger.Error("failed to read allocations", "path", *allocPath, "err", err)
		return 1
	}

	dist, err := buildDistribution(entries)
	if err != nil {
		logger.Error("failed to build commitment tree", "err", err)
		return 1
	}
	logger.Info("commitment built", "root", dist.Root, "entries", dist.Count)

	out, err := json.MarshalIndent(dist, "", "  ")
	if err != nil {
		logger.Error("failed to encode output", "err", err)
		return 1
	}
	out = append(out, '\n')

	if *outPath == "" {
		os.Stdout.Write(out)
		return 0
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		logger.Error("failed to write output", "path", *outPath, "err", err)
		return 1
	}
	logger.Info("proofs written", "path", *outPath)
	return 0
}

// readAllocations parses and validates the input file. Recipients must be
// well-formed, non-zero, and unique: the ledger honors at most one claim
// per account, so a duplicate row could never be exercised.
func readAllocations(path string) ([]types.Allocation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows []allocEntry
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("invalid allocation JSON: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("allocation list is empty")
	}

	seen := make(map[types.Address]int, len(rows))
	entries := make([]types.Allocation, len(rows))
	for i, row := range rows {
		addr, err := geth.ParseAddress(row.Recipient)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if addr.IsZero() {
			return nil, fmt.Errorf("entry %d: recipient is the zero address", i)
		}
		if prev, dup := seen[addr]; dup {
			return nil, fmt.Errorf("entry %d: duplicate recipient %s (first at entry %d)", i, addr, prev)
		}
		seen[addr] = i

		amount, err := geth.ParseAmount(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries[i] = types.Allocation{Recipient: addr, Amount: amount}
	}
	return entries, nil
}

// buildDistribution builds the tree and collects the root and every proof.
func buildDistribution(entries []types.Allocation) (*distribution, error) {
	tree, err := merkle.NewTree(entries)
	if err != nil {
		return nil, err
	}

	proofs := make(map[string]proofEntry, len(entries))
	for i, e := range entries {
		proof, err := tree.Proof(i)
		if err != nil {
			return nil, err
		}
		siblings := make([]string, len(proof))
		for j, h := range proof {
			siblings[j] = h.Hex()
		}
		proofs[e.Recipient.Hex()] = proofEntry{
			Amount: e.Amount.Hex(),
			Proof:  siblings,
		}
	}

	return &distribution{
		Root:   tree.Root().Hex(),
		Count:  tree.Len(),
		Proofs: proofs,
	}, nil
}

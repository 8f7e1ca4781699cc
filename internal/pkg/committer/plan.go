// Package committer collects Spanner mutations into a CommitPlan and applies
// them atomically.
//
// Repositories build mutations without applying them; the caller gathers
// them in a plan and commits once:
//
//	plan := committer.NewPlan()
//	plan.Add(model.InsertMut(data))
//	return c.Apply(ctx, plan)
//
// When the mutations depend on reads (id allocation, optimistic version
// checks), the plan is buffered inside ReadWrite instead:
//
//	return c.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
//	    if err := committer.CheckVersion(ctx, txn, table, key, "version", expected); err != nil {
//	        return err
//	    }
//	    return plan.Buffer(txn)
//	})
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

var (
	// ErrVersionMismatch is returned by CheckVersion when the stored version
	// differs from the expected one.
	ErrVersionMismatch = errors.New("version mismatch")
	// ErrRowNotFound is returned by CheckVersion when the row does not exist.
	ErrRowNotFound = errors.New("row not found")
)

// CommitPlan is a typed wrapper around Spanner mutations.
// It collects mutations from multiple sources and applies them atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Buffer writes the plan into an open read-write transaction.
func (cp *CommitPlan) Buffer(txn *spanner.ReadWriteTransaction) error {
	if cp.IsEmpty() {
		return nil
	}
	if err := txn.BufferWrite(cp.mutations); err != nil {
		return fmt.Errorf("failed to buffer commit plan: %w", err)
	}
	return nil
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically, without reads.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ReadWrite runs fn inside a read-write transaction. Spanner may call fn more
// than once when the transaction aborts, so fn must only act through txn.
// Errors returned by fn are passed through unwrapped.
func (c *Committer) ReadWrite(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	var fnErr error
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		fnErr = fn(ctx, txn)
		return fnErr
	})
	if err != nil {
		if fnErr != nil {
			return fnErr
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// CheckVersion reads versionColumn of the row at key and compares it with
// expected. It returns ErrRowNotFound or ErrVersionMismatch (wrapped) on
// failure. The read locks the row until the transaction ends.
func CheckVersion(ctx context.Context, txn *spanner.ReadWriteTransaction, table string, key spanner.Key, versionColumn string, expected int64) error {
	row, err := txn.ReadRow(ctx, table, key, []string{versionColumn})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return fmt.Errorf("%s %v: %w", table, key, ErrRowNotFound)
		}
		return fmt.Errorf("failed to read %s version: %w", table, err)
	}

	var current int64
	if err := row.Column(0, &current); err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}

	if current != expected {
		return fmt.Errorf("%s %v: expected version %d, got %d: %w", table, key, expected, current, ErrVersionMismatch)
	}
	return nil
}

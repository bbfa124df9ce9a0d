package ports

import (
	"context"
)

// TransactionState is the ledger's view of a submitted transaction.
type TransactionState int

const (
	// TransactionStateNotFound means the ledger has no record of the
	// transaction. After broadcast this usually means it was dropped.
	TransactionStateNotFound TransactionState = iota

	// TransactionStatePending means the transaction sits in the mempool
	// and is not yet included in a block.
	TransactionStatePending

	// TransactionStateConfirmed means the transaction executed
	// successfully on the ledger.
	TransactionStateConfirmed

	// TransactionStateFaulted means the transaction was included but its
	// execution faulted: no tokens were burned.
	TransactionStateFaulted
)

// String returns the lowercase name of the transaction state.
func (s TransactionState) String() string {
	switch s {
	case TransactionStateNotFound:
		return "not_found"
	case TransactionStatePending:
		return "pending"
	case TransactionStateConfirmed:
		return "confirmed"
	case TransactionStateFaulted:
		return "faulted"
	default:
		return "not_found"
	}
}

// WalletClient is the outbound contract for the token ledger. Every failure
// it returns is an *errs.ExternalCallError tagged with the call phase, so
// the orchestrator can tell a clean pre-broadcast failure from an ambiguous
// one.
type WalletClient interface {
	// QueryBalance returns the account's spendable balance of the token.
	// Failures are tagged errs.PhaseBalance.
	QueryBalance(ctx context.Context, accountID, tokenID string) (int64, error)

	// Burn signs and broadcasts a burn of amount tokens from the account.
	// On success it returns the ledger transaction ID.
	//
	// Failures are tagged errs.PhaseSigning when the transaction never
	// left the wallet, or errs.PhaseBroadcast when submission itself
	// failed; broadcast failures carry the locally computed transaction
	// ID so the caller can reconcile.
	Burn(ctx context.Context, accountID, tokenID string, amount int64) (string, error)

	// TransactionStatus reports the ledger's view of a transaction.
	// Used for confirmation polling and for reconciliation. Failures are
	// tagged errs.PhaseConfirm.
	TransactionStatus(ctx context.Context, transactionID string) (TransactionState, error)
}

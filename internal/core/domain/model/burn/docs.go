// Package burn models the lifecycle of a token-burn attempt.
//
// A burn is a multi-stage interaction with an external ledger: validate,
// sign, broadcast, confirm, persist. The critical property is honest failure
// classification: a failure before broadcast is clean and retryable, while a
// failure at or after broadcast is ambiguous (the ledger may have accepted
// the transaction) and must settle as Unknown until reconciliation resolves
// it. Retrying over an ambiguous outcome would risk burning twice.
//
// The Registry enforces single-flight per order on top of the stage rules.
package burn

// Package ledger records generate runs in SQLite.
//
// Each run stores a random run id, the plan digest, the registry path and
// digest, and the digest of every artifact the run produced. Runs are
// ordered by seq, an autoincrementing logical counter; no timestamps are
// kept, so two runs of an unchanged plan over an unchanged registry record
// identical digests.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package ledger

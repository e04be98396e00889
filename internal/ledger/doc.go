// Package ledger holds the primitives shared by every record registry: the
// monotonic identity sequence, the permanent natural-key index, and the
// append-only secondary indices.
//
// The primitives are deliberately append-mostly: registries never delete
// records, so index maintenance stays O(1) per mutation with no compaction.
// Each registry's store composes them behind a single mutex so every commit
// is all-or-nothing; the primitives themselves carry no cross-primitive
// transaction logic.
package ledger

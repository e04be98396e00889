package ledger

import dErrors "orgnet/pkg/domain-errors"

var (
	// ErrNotFound keeps store-level 404s consistent across registries.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

	// ErrDuplicateKey marks a natural-key collision. Reservations are
	// permanent, so the error fires even against revoked records.
	ErrDuplicateKey = dErrors.New(dErrors.CodeDuplicateKey, "key already reserved")
)

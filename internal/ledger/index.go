package ledger

import "sync"

// UniqueIndex maps a natural key (content hash, holiday date) to the single
// record id that owns it. A reservation is permanent: it is never released or
// reassigned, even after the record's status becomes terminal.
type UniqueIndex struct {
	mu  sync.RWMutex
	ids map[string]uint64
}

// NewUniqueIndex returns an empty natural-key index.
func NewUniqueIndex() *UniqueIndex {
	return &UniqueIndex{ids: make(map[string]uint64)}
}

// Reserve binds key to id. Returns ErrDuplicateKey when the key is already
// bound, regardless of the owning record's status.
func (x *UniqueIndex) Reserve(key string, id uint64) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, taken := x.ids[key]; taken {
		return ErrDuplicateKey
	}
	x.ids[key] = id
	return nil
}

// Exists reports whether key is reserved.
func (x *UniqueIndex) Exists(key string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, taken := x.ids[key]
	return taken
}

// Lookup returns the id bound to key, or false when the key is unreserved.
func (x *UniqueIndex) Lookup(key string) (uint64, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	id, ok := x.ids[key]
	return id, ok
}

// AppendIndex maps an owner principal or category string to the ordered ids
// created under it. Entries are append-only and preserve insertion order so
// "my records" listings match creation order.
type AppendIndex struct {
	mu  sync.RWMutex
	ids map[string][]uint64
}

// NewAppendIndex returns an empty secondary index.
func NewAppendIndex() *AppendIndex {
	return &AppendIndex{ids: make(map[string][]uint64)}
}

// Append records id under key.
func (x *AppendIndex) Append(key string, id uint64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.ids[key] = append(x.ids[key], id)
}

// List returns a copy of the ids recorded under key, in insertion order.
func (x *AppendIndex) List(key string) []uint64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return append([]uint64{}, x.ids[key]...)
}

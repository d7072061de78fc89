// Package consttab implements the per-analysis constant table (spec §4.5):
// a process-local, scope-shadowable mapping from identifier to known
// integer, with an LIFO save/restore discipline at function scope entry.
package consttab

// Table resolves identifiers to statically-known integers within a
// single analysis. It is never shared across analyses or goroutines.
type Table struct {
	values map[string]int64
}

// New returns an empty Table.
func New() *Table {
	return &Table{values: make(map[string]int64)}
}

// Set records identifier name as resolving to value.
func (t *Table) Set(name string, value int64) {
	t.values[name] = value
}

// Lookup returns the known integer value of name, if any.
func (t *Table) Lookup(name string) (int64, bool) {
	v, ok := t.values[name]

	return v, ok
}

// Snapshot captures the current contents for later restoration. The
// returned value is a full copy, so mutations to t after Snapshot do not
// affect it (copy-on-enter semantics, §4.5/§9).
func (t *Table) Snapshot() map[string]int64 {
	snap := make(map[string]int64, len(t.values))
	for k, v := range t.values {
		snap[k] = v
	}

	return snap
}

// Restore replaces the table's contents with a previously captured
// snapshot. Exception-safe callers should defer Restore immediately
// after Snapshot so a panic mid-walk still restores the outer scope.
func (t *Table) Restore(snap map[string]int64) {
	t.values = snap
}

// EnterScope snapshots the table and returns a restore function, so
// callers can write:
//
//	restore := tbl.EnterScope()
//	defer restore()
func (t *Table) EnterScope() func() {
	snap := t.Snapshot()

	return func() { t.Restore(snap) }
}

package search

// Expansions is the per-row presentation side table, keyed by meal ID.
// Presence means the description is shown in full. Fetched meals are never
// annotated in place.
type Expansions map[string]struct{}

// Toggle flips the entry for id and reports whether it is now expanded.
func (e Expansions) Toggle(id string) bool {
	if _, ok := e[id]; ok {
		delete(e, id)
		return false
	}
	e[id] = struct{}{}
	return true
}

// IsExpanded reports whether id is expanded.
func (e Expansions) IsExpanded(id string) bool {
	_, ok := e[id]
	return ok
}

// Reset collapses every row.
func (e Expansions) Reset() {
	clear(e)
}

package resource

// Reconciliation applies a single mutation's server-confirmed result to an
// in-memory items sequence without a full re-fetch. The functions are exported
// so nested child collections (a semester's breaks, a group's assignments)
// apply the same rules scoped to their owning parent.

// Insert places a newly created item according to policy. RequireRefetch
// leaves items untouched; the caller re-fetches to learn which page the new
// record landed on.
func Insert[T Entity](items []T, item T, policy InsertPolicy) []T {
	switch policy {
	case Prepend:
		return append([]T{item}, items...)
	case Append:
		return append(append([]T(nil), items...), item)
	default: // RequireRefetch
		return items
	}
}

// Replace swaps the item with a matching id. An absent id is not an error:
// the record may live on a page that is not currently loaded.
func Replace[T Entity](items []T, item T) []T {
	for i := range items {
		if items[i].EntityID() == item.EntityID() {
			out := append([]T(nil), items...)
			out[i] = item
			return out
		}
	}
	return items
}

// RemoveByID drops the item with a matching id; absent ids are a no-op.
func RemoveByID[T Entity](items []T, id string) []T {
	for i := range items {
		if items[i].EntityID() == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...)
		}
	}
	return items
}

// Recount shifts TotalItems by delta and re-derives TotalPages. Deletes
// decrement the count even when the record was not loaded locally.
func Recount(info PageInfo, delta int) PageInfo {
	total := info.TotalItems + delta
	if total < 0 {
		total = 0
	}
	return derivePageInfo(info.CurrentPage, info.PageSize, total)
}

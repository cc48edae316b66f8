package lot

import "cmp"

// Compare orders lots by earliest NextAvailable, then lowest ID.
// Two lots compare equal only if they share an ID.
func Compare(a, b *Lot) int {
	if c := cmp.Compare(a.nextAvailable, b.nextAvailable); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

func Less(a, b *Lot) bool {
	return Compare(a, b) < 0
}

// CompareViews applies the same rule to snapshots.
func CompareViews(a, b View) int {
	if c := cmp.Compare(a.NextAvailable, b.NextAvailable); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

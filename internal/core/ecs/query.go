package ecs

import "sort"

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
func Each2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				fn(id, a, b)
			}
		}
	} else {
		for id, b := range sb.data {
			if a, ok := sa.data[id]; ok {
				fn(id, a, b)
			}
		}
	}
}

// Filter2 returns, in ascending id order, the entities that have both A and B
// and satisfy keep.
func Filter2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], keep func(EntityID, *A, *B) bool) []EntityID {
	var out []EntityID
	Each2(sa, sb, func(id EntityID, a *A, b *B) {
		if keep(id, a, b) {
			out = append(out, id)
		}
	})
	sortIDs(out)
	return out
}

func sortIDs(ids []EntityID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

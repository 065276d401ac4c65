package core

// HashLocName computes a stable 32-bit content hash of a (Loc, NameRef)
// pair, the same building block the original implementation used to key
// resolver-side caches. Exposed here so later passes can reuse it without
// re-deriving the mixing function.
func HashLocName(l Loc, name NameRef) uint32 {
	h := mix(uint32(l.File), l.Begin)
	h = mix(h, l.End)
	h = mix(h, uint32(name))
	return h*31 + 7
}

// HashNames computes a stable, order-sensitive hash over a slice of
// NameRefs, used e.g. to key a mixin list for equality checks without
// comparing the full slice.
func HashNames(names []NameRef) uint32 {
	var h uint32
	for _, n := range names {
		h = mix(h, uint32(n))
	}
	return h*31 + 11
}

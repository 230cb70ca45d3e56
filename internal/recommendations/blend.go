package recommendations

// blend concatenates candidate lists in priority order, drops
// duplicate ids (first occurrence wins) and clips the result to
// limit. Earlier sources therefore always outrank later ones.
func blend(limit int, sources ...[]uint) []uint {
	seen := make(map[uint]struct{})
	out := make([]uint, 0, limit)

	for _, source := range sources {
		for _, id := range source {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}

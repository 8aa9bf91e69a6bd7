package factor

import "sort"

// Weight is the sum of the character codes of every scope variable name.
// It breaks ties between factors with the same number of rows.
func Weight(scope []string) int {
	w := 0
	for _, v := range scope {
		for _, r := range v {
			w += int(r)
		}
	}
	return w
}

// Compare orders factors by row count, then by Weight of their scope.
func Compare(a, b *Factor) int {
	if a.Len() != b.Len() {
		if a.Len() < b.Len() {
			return -1
		}
		return 1
	}
	wa, wb := Weight(a.scope), Weight(b.scope)
	switch {
	case wa < wb:
		return -1
	case wa > wb:
		return 1
	}
	return 0
}

// Sort stably orders factors cheapest first
func Sort(fs []*Factor) {
	sort.SliceStable(fs, func(i, j int) bool {
		return Compare(fs[i], fs[j]) < 0
	})
}

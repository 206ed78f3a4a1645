package ledger

// offsets is a Fenwick tree over the deviation of each item's height from
// the default height. Only measured items ever hold a non-zero deviation, so
// the tree lives in a sparse map and a reset is a single allocation.
type offsets struct {
	n    int
	tree map[int]int
}

func newOffsets(n int) *offsets {
	return &offsets{n: n, tree: make(map[int]int)}
}

// add adds d to the deviation at index i.
func (o *offsets) add(i, d int) {
	if d == 0 {
		return
	}
	for i++; i <= o.n; i += i & -i {
		v := o.tree[i] + d
		if v == 0 {
			delete(o.tree, i)
			continue
		}
		o.tree[i] = v
	}
}

// prefix returns the summed deviation over [0, i).
func (o *offsets) prefix(i int) int {
	i = min(i, o.n)
	s := 0
	for ; i > 0; i -= i & -i {
		s += o.tree[i]
	}
	return s
}

package lrgen

import (
	"sort"
)

type entry struct {
	index int
	value int
}

// row is a sparse vector to be packed into the shared Table / Check arrays.
type row struct {
	id      int // position in the rows list, for stable ordering
	entries []entry
	base    int
}

type packer struct {
	table []int
	check []int
	used  map[int]bool
}

func (p *packer) ensure(size int) {
	for len(p.check) < size {
		p.table = append(p.table, 0)
		p.check = append(p.check, -1)
	}
}

func (p *packer) fits(base int, entries []entry) bool {
	if p.used[base] {
		return false
	}

	for _, ent := range entries {
		n := base + ent.index
		if n < len(p.check) && p.check[n] != -1 {
			return false
		}
	}
	return true
}

// pack assigns a unique nonzero base to every non-empty row using first
// fit, largest rows first.  Empty rows keep base 0.
func pack(rows []*row) ([]int, []int) {
	p := &packer{used: map[int]bool{}}

	ordered := make([]*row, 0, len(rows))
	for _, r := range rows {
		if len(r.entries) > 0 {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i int, j int) bool {
		return len(ordered[i].entries) > len(ordered[j].entries)
	})

	for _, r := range ordered {
		minIndex := r.entries[0].index
		maxIndex := r.entries[0].index
		for _, ent := range r.entries {
			if ent.index < minIndex {
				minIndex = ent.index
			}
			if ent.index > maxIndex {
				maxIndex = ent.index
			}
		}

		base := 1 - minIndex
		if base < 1 {
			base = 1
		}
		for !p.fits(base, r.entries) {
			base++
		}

		p.used[base] = true
		p.ensure(base + maxIndex + 1)
		for _, ent := range r.entries {
			p.table[base+ent.index] = ent.value
			p.check[base+ent.index] = ent.index
		}
		r.base = base
	}

	return p.table, p.check
}

package lrgen

// Terminal set indexed by dense terminal index.
type bitset []uint64

func newBitset(size int) bitset {
	return make(bitset, (size+63)/64)
}

func (set bitset) add(i int) bool {
	word, mask := i/64, uint64(1)<<(uint(i)%64)
	if set[word]&mask != 0 {
		return false
	}
	set[word] |= mask
	return true
}

func (set bitset) has(i int) bool {
	return set[i/64]&(uint64(1)<<(uint(i)%64)) != 0
}

// union adds other's members to set and reports whether set changed.
func (set bitset) union(other bitset) bool {
	changed := false
	for i, word := range other {
		merged := set[i] | word
		if merged != set[i] {
			set[i] = merged
			changed = true
		}
	}
	return changed
}

func (set bitset) members() []int {
	result := []int{}
	for i := 0; i < len(set)*64; i++ {
		if set.has(i) {
			result = append(result, i)
		}
	}
	return result
}

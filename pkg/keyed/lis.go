package keyed

// longestIncreasing marks one longest strictly increasing subsequence of
// seq. Negative values never take part. It runs in O(n log n).
func longestIncreasing(seq []int) []bool {
	keep := make([]bool, len(seq))
	prev := make([]int, len(seq))
	tails := make([]int, 0, len(seq)) // tails[k] is the index ending the best run of length k+1

	for i, v := range seq {
		if v < 0 {
			continue
		}
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := int(uint(lo+hi) >> 1)
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	if len(tails) == 0 {
		return keep
	}
	for i := tails[len(tails)-1]; i >= 0; i = prev[i] {
		keep[i] = true
	}
	return keep
}

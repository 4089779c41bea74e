// meta-scallop: a meta-assembler of RNA-seq transcripts across multiple samples.
// Copyright (c) 2021 Shao Group, The Pennsylvania State University.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/Shao-Group/meta-scallop/blob/master/LICENSE.txt>.

package utils

// Operations on sorted int32 sequences. Splice-position sets, intron
// chains, and exon chains are all kept as sorted vectors, so set union,
// intersection, and consistency-checked merging reduce to the
// primitives below.

import "sort"

// IncreasingSequence reports whether v is strictly increasing.
func IncreasingSequence(v []int32) bool {
	for i := 1; i < len(v); i++ {
		if v[i-1] >= v[i] {
			return false
		}
	}
	return true
}

// UnionSorted returns the sorted set union of x and y. Both inputs
// must be sorted with unique elements.
func UnionSorted(x, y []int32) []int32 {
	result := make([]int32, 0, len(x)+len(y))
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		switch {
		case x[i] < y[j]:
			result = append(result, x[i])
			i++
		case x[i] > y[j]:
			result = append(result, y[j])
			j++
		default:
			result = append(result, x[i])
			i++
			j++
		}
	}
	result = append(result, x[i:]...)
	result = append(result, y[j:]...)
	return result
}

// IntersectSortedCount returns the number of elements shared by x and
// y. Both inputs must be sorted with unique elements.
func IntersectSortedCount(x, y []int32) int {
	count := 0
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		switch {
		case x[i] < y[j]:
			i++
		case x[i] > y[j]:
			j++
		default:
			count++
			i++
			j++
		}
	}
	return count
}

// MergeTwoSorted merges two sorted sequences that agree on their
// overlap into their common supersequence. x.front() must not exceed
// y.front() when both are non-empty. The merge fails when the two
// sequences disagree on the overlapping region.
func MergeTwoSorted(x, y []int32) ([]int32, bool) {
	if len(x) == 0 {
		return append([]int32(nil), y...), true
	}
	if len(y) == 0 {
		return append([]int32(nil), x...), true
	}

	// first element of x that belongs to y's range
	i := sort.Search(len(x), func(k int) bool { return x[k] >= y[0] })

	overlap := len(x) - i
	if overlap > len(y) {
		overlap = len(y)
	}
	for k := 0; k < overlap; k++ {
		if x[i+k] != y[k] {
			return nil, false
		}
	}

	result := make([]int32, 0, i+len(y))
	result = append(result, x[:i]...)
	if overlap == len(y) {
		result = append(result, x[i:]...)
	} else {
		result = append(result, y...)
	}
	return result, true
}

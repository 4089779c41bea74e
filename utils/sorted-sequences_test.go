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

import "testing"

func int32sEqual(x, y []int32) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func TestUnionSorted(t *testing.T) {
	if !int32sEqual(UnionSorted(nil, nil), []int32{}) {
		t.Error("empty union failed")
	}
	if !int32sEqual(UnionSorted([]int32{1, 3, 5}, []int32{2, 3, 6}), []int32{1, 2, 3, 5, 6}) {
		t.Error("union 1 failed")
	}
	if !int32sEqual(UnionSorted([]int32{1, 2}, nil), []int32{1, 2}) {
		t.Error("union 2 failed")
	}
}

func TestIntersectSortedCount(t *testing.T) {
	if IntersectSortedCount([]int32{1, 3, 5}, []int32{2, 3, 5, 6}) != 2 {
		t.Error("intersection count 1 failed")
	}
	if IntersectSortedCount(nil, []int32{1}) != 0 {
		t.Error("intersection count 2 failed")
	}
}

func TestIncreasingSequence(t *testing.T) {
	if !IncreasingSequence([]int32{1, 2, 3}) {
		t.Error("increasing sequence 1 failed")
	}
	if IncreasingSequence([]int32{1, 1}) {
		t.Error("increasing sequence 2 failed")
	}
	if !IncreasingSequence(nil) {
		t.Error("increasing sequence 3 failed")
	}
}

func TestMergeTwoSorted(t *testing.T) {
	xy, ok := MergeTwoSorted([]int32{1, 2, 3}, []int32{2, 3, 4})
	if !ok || !int32sEqual(xy, []int32{1, 2, 3, 4}) {
		t.Error("merge 1 failed")
	}
	xy, ok = MergeTwoSorted([]int32{1, 2}, []int32{3, 4})
	if !ok || !int32sEqual(xy, []int32{1, 2, 3, 4}) {
		t.Error("merge 2 failed")
	}
	xy, ok = MergeTwoSorted([]int32{1, 2, 3, 4}, []int32{2, 3})
	if !ok || !int32sEqual(xy, []int32{1, 2, 3, 4}) {
		t.Error("merge 3 failed")
	}
	if _, ok := MergeTwoSorted([]int32{1, 3}, []int32{2, 3}); ok {
		t.Error("merge 4 accepted a disagreeing overlap")
	}
}

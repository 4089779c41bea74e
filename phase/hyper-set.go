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

package phase

// HyperSet is a multiset of vertex-index paths. Paths are stored
// shifted by -1, offsetting the source sentinel so indices refer to
// internal vertices counted from zero.
type HyperSet struct {
	index  map[string]int
	Lists  [][]int
	Counts []int
}

// NewHyperSet returns an empty hyper set.
func NewHyperSet() *HyperSet {
	return &HyperSet{index: make(map[string]int)}
}

// AddNodeList inserts a vertex path with the given multiplicity,
// shifting every vertex index down by one.
func (hs *HyperSet) AddNodeList(v []int, count int) {
	vv := make([]int, len(v))
	for i, x := range v {
		vv[i] = x - 1
	}
	key := nodeKey(vv)
	if k, ok := hs.index[key]; ok {
		hs.Counts[k] += count
		return
	}
	hs.index[key] = len(hs.Lists)
	hs.Lists = append(hs.Lists, vv)
	hs.Counts = append(hs.Counts, count)
}

// Len returns the number of distinct paths.
func (hs *HyperSet) Len() int { return len(hs.Lists) }

// Clear empties the hyper set.
func (hs *HyperSet) Clear() {
	hs.index = make(map[string]int)
	hs.Lists = hs.Lists[:0]
	hs.Counts = hs.Counts[:0]
}

func nodeKey(v []int) string {
	buf := make([]byte, 0, 4*len(v))
	for _, p := range v {
		buf = append(buf, byte(p), byte(p>>8), byte(p>>16), byte(p>>24))
	}
	return string(buf)
}

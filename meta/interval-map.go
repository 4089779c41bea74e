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

package meta

import (
	"sort"

	"github.com/Shao-Group/meta-scallop/internal"
)

// SplitIntervalMap sums weights over half-open genomic intervals,
// fragmenting at every inserted boundary. Iterating the map yields
// maximal covered sub-intervals split at insertion boundaries, each
// with the total weight of the intervals covering it.
type SplitIntervalMap struct {
	ls []int32
	rs []int32
	ws []int
}

// Add accumulates weight w over [l, r).
func (m *SplitIntervalMap) Add(l, r int32, w int) {
	internal.Assert(l < r, "interval map: empty interval")
	m.ls = append(m.ls, l)
	m.rs = append(m.rs, r)
	m.ws = append(m.ws, w)
}

// Segment is one covered sub-interval with its accumulated weight.
type Segment struct {
	Lpos, Rpos int32
	Weight     int
}

// Segments sweeps the inserted intervals and returns the covered
// sub-intervals in genomic order.
func (m *SplitIntervalMap) Segments() []Segment {
	if len(m.ls) == 0 {
		return nil
	}

	bounds := make([]int32, 0, 2*len(m.ls))
	bounds = append(bounds, m.ls...)
	bounds = append(bounds, m.rs...)
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
	bounds = uniqueSorted(bounds)

	var segments []Segment
	for i := 0; i+1 < len(bounds); i++ {
		l, r := bounds[i], bounds[i+1]
		w := 0
		covered := false
		for k := range m.ls {
			if m.ls[k] <= l && r <= m.rs[k] {
				w += m.ws[k]
				covered = true
			}
		}
		if !covered {
			continue
		}
		segments = append(segments, Segment{Lpos: l, Rpos: r, Weight: w})
	}
	return segments
}

func uniqueSorted(v []int32) []int32 {
	k := 0
	for i := range v {
		if i > 0 && v[i] == v[k-1] {
			continue
		}
		v[k] = v[i]
		k++
	}
	return v[:k]
}

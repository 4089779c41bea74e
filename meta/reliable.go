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

// Reliability selectors. An element is reliable when enough samples
// observed it or its accumulated weight is high enough; the resulting
// sets whitelist edges during per-sample re-filtering.

import "github.com/Shao-Group/meta-scallop/graph"

// GetReliableJunctions returns the junction pairs observed in at least
// the given number of samples or with at least the given weight.
func (cg *CombinedGraph) GetReliableJunctions(samples int, weight float64) graph.PairSet {
	s := make(graph.PairSet)
	for _, j := range cg.Junctions {
		if j.Count < samples && j.Weight < weight {
			continue
		}
		s[graph.PositionPair{P1: j.P1, P2: j.P2}] = true
	}
	return s
}

// GetReliableSplices aggregates junction evidence per splice position
// and returns the reliable positions.
func (cg *CombinedGraph) GetReliableSplices(samples int, weight float64) graph.PositionSet {
	m := make(map[int32]WeightCount)
	for _, j := range cg.Junctions {
		for _, p := range [2]int32{j.P1, j.P2} {
			d := m[p]
			d.Weight += j.Weight
			d.Count += j.Count
			m[p] = d
		}
	}

	s := make(graph.PositionSet)
	for p, d := range m {
		if d.Weight < weight && d.Count < samples {
			continue
		}
		s[p] = true
	}
	return s
}

// GetReliableAdjacencies returns the shared positions of adjacent
// region pairs whose two sides are both reliable.
func (cg *CombinedGraph) GetReliableAdjacencies(samples int, weight float64) graph.PositionSet {
	s := make(graph.PositionSet)
	for i := 0; i+1 < len(cg.Regions); i++ {
		r1 := cg.Regions[i]
		r2 := cg.Regions[i+1]
		if r1.Rpos != r2.Lpos {
			continue
		}

		b := false
		if r1.Weight >= weight && r2.Weight >= weight {
			b = true
		}
		if r1.Count >= samples && r2.Count >= samples {
			b = true
		}
		if !b {
			continue
		}
		s[r1.Rpos] = true
	}
	return s
}

// GetReliableStartBoundaries aggregates start-bound evidence through
// the boundary-grouping map and returns the pre-image positions of the
// reliable groups.
func (cg *CombinedGraph) GetReliableStartBoundaries(samples int, weight float64) graph.PositionSet {
	return reliableBoundaries(cg.SBounds, cg.SMap, samples, weight)
}

// GetReliableEndBoundaries is the end-bound counterpart of
// GetReliableStartBoundaries.
func (cg *CombinedGraph) GetReliableEndBoundaries(samples int, weight float64) graph.PositionSet {
	return reliableBoundaries(cg.TBounds, cg.TMap, samples, weight)
}

func reliableBoundaries(bounds []Bound, group map[int32]int32, samples int, weight float64) graph.PositionSet {
	m := make(map[int32]WeightCount)
	for _, b := range bounds {
		q := b.Pos
		if p, ok := group[q]; ok {
			q = p
		}
		d := m[q]
		d.Weight += b.Weight
		d.Count += b.Count
		m[q] = d
	}

	reliable := make(map[int32]bool)
	for p, d := range m {
		if d.Weight < weight && d.Count < samples {
			continue
		}
		reliable[p] = true
	}

	s := make(graph.PositionSet)
	for _, b := range bounds {
		q := b.Pos
		if p, ok := group[q]; ok {
			q = p
		}
		if !reliable[q] {
			continue
		}
		s[b.Pos] = true
	}
	return s
}

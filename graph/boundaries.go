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

package graph

// Grouping of nearby transcript boundaries. Start (end) boundaries
// connected by continuous vertices and within the grouping distance
// collapse onto the leftmost (rightmost) member of their group; the
// returned map records where each folded position went.

import (
	"sort"

	"github.com/Shao-Group/meta-scallop/internal"
)

// GroupStartBoundaries merges groupable source-incident boundaries.
// The redundant source edge is removed, its weight and counts fold
// into the group leader's edge, and the vertices and adjacency edges
// between the leader and the folded boundary absorb the folded weight.
func GroupStartBoundaries(gr *SpliceGraph, maxGroupBoundaryDistance int32) map[int32]int32 {
	smap := make(map[int32]int32)

	var v []int
	for _, e := range gr.OutEdges(0) {
		internal.Assert(e.Source() == 0, "source out-edge with wrong source")
		v = append(v, e.Target())
	}
	if len(v) <= 1 {
		return smap
	}
	sort.Ints(v)

	p1 := gr.VertexInfo(v[0]).Lpos
	p2 := p1
	k1 := v[0]
	k2 := k1
	pa, ok := gr.Edge(0, v[0])
	internal.Assert(ok, "missing source edge for start boundary")

	for i := 1; i < len(v); i++ {
		p := gr.VertexInfo(v[i]).Lpos
		pb, ok := gr.Edge(0, v[i])
		internal.Assert(ok, "missing source edge for start boundary")
		wb := pb.Weight
		eb := pb.Info

		b := CheckContinuousVertices(gr, k2, v[i])

		internal.Assert(p >= p2, "start boundaries out of order")
		if p-p2 > maxGroupBoundaryDistance {
			b = false
		}

		if !b {
			p1 = p
			p2 = p
			k1 = v[i]
			k2 = v[i]
			pa = pb
			continue
		}

		smap[p] = p1
		for j := k1; j < v[i]; j++ {
			pc, ok := gr.Edge(j, j+1)
			internal.Assert(ok, "broken adjacency chain in start boundary group")
			gr.SetVertexWeight(j, gr.VertexWeight(j)+wb)
			pc.Weight += wb
			pc.Info.Count += eb.Count
			pc.Info.Weight += eb.Weight
		}
		pa.Weight += wb
		pa.Info.Count += eb.Count
		pa.Info.Weight += eb.Weight
		gr.RemoveEdge(pb)

		k2 = v[i]
		p2 = p
	}
	return smap
}

// GroupEndBoundaries merges groupable sink-incident boundaries,
// sweeping from the rightmost boundary leftwards.
func GroupEndBoundaries(gr *SpliceGraph, maxGroupBoundaryDistance int32) map[int32]int32 {
	tmap := make(map[int32]int32)
	n := gr.NumVertices() - 1

	var v []int
	for _, e := range gr.InEdges(n) {
		internal.Assert(e.Target() == n, "sink in-edge with wrong target")
		v = append(v, e.Source())
	}
	if len(v) <= 1 {
		return tmap
	}
	sort.Sort(sort.Reverse(sort.IntSlice(v)))

	p1 := gr.VertexInfo(v[0]).Rpos
	p2 := p1
	k1 := v[0]
	pa, ok := gr.Edge(v[0], n)
	internal.Assert(ok, "missing sink edge for end boundary")

	k2 := k1
	for i := 1; i < len(v); i++ {
		p := gr.VertexInfo(v[i]).Rpos
		pb, ok := gr.Edge(v[i], n)
		internal.Assert(ok, "missing sink edge for end boundary")
		wb := pb.Weight

		b := CheckContinuousVertices(gr, v[i], k2)

		internal.Assert(p <= p2, "end boundaries out of order")
		if p2-p > maxGroupBoundaryDistance {
			b = false
		}

		if !b {
			p1 = p
			p2 = p
			k1 = v[i]
			k2 = v[i]
			pa = pb
			continue
		}

		tmap[p] = p1
		for j := v[i]; j < k1; j++ {
			pc, ok := gr.Edge(j, j+1)
			internal.Assert(ok, "broken adjacency chain in end boundary group")
			pc.Weight += wb
			gr.SetVertexWeight(j+1, gr.VertexWeight(j+1)+wb)
		}
		pa.Weight += wb
		gr.RemoveEdge(pb)

		k2 = v[i]
		p2 = p
	}
	return tmap
}

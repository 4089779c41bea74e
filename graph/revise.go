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

// Iterative cleanup of a noisy splice graph. The operators below
// remove spurious exons, junctions, and boundaries; surviving vertices
// keep at least one in- and one out-edge through the spanning-cover
// rule of keepSurvivingEdges.

import (
	"sort"

	"github.com/willf/bitset"
)

// ReviseFull repeatedly applies the cleanup operators in fixed
// priority until a full pass produces no change, then refines. The
// procedure is idempotent.
func ReviseFull(gr *SpliceGraph, params *Parameters) {
	Refine(gr)

	for {
		if extendBoundaries(gr) {
			continue
		}
		if removeInnerBoundaries(gr) {
			continue
		}
		if removeSmallExons(gr, params.MinExonLength) {
			Refine(gr)
			continue
		}
		if removeSmallJunctions(gr) {
			Refine(gr)
			continue
		}
		if keepSurvivingEdges(gr, params.MinSurvivingEdgeWeight) {
			Refine(gr)
			continue
		}
		if removeIntronContamination(gr, params.MaxIntronContaminationCoverage) {
			continue
		}
		break
	}

	Refine(gr)
}

// Revise applies only the surviving-edge filter and refines.
func Revise(gr *SpliceGraph, params *Parameters) {
	Refine(gr)
	for keepSurvivingEdges(gr, params.MinSurvivingEdgeWeight) {
		Refine(gr)
	}
	Refine(gr)
}

// Refine repeatedly clears internal vertices that have in-edges but no
// out-edges, or out-edges but no in-edges.
func Refine(gr *SpliceGraph) {
	for {
		changed := false
		for i := 1; i < gr.NumVertices()-1; i++ {
			if gr.Degree(i) == 0 {
				continue
			}
			if gr.InDegree(i) >= 1 && gr.OutDegree(i) >= 1 {
				continue
			}
			gr.ClearVertex(i)
			changed = true
		}
		if !changed {
			return
		}
	}
}

// extendBoundaries redirects a lone high-coverage vertex followed (or
// preceded) by a thin gap-crossing edge to the sink (or source): such
// a vertex is more likely a true transcript terminal than a
// read-through. At most one edge is redirected per call.
func extendBoundaries(gr *SpliceGraph) bool {
	n := gr.NumVertices() - 1
	for _, e := range gr.Edges() {
		s, t := e.Source(), e.Target()
		if s == 0 || t == n {
			continue
		}
		gap := gr.VertexInfo(t).Lpos - gr.VertexInfo(s).Rpos
		if gap <= 0 {
			continue
		}

		we := e.Weight
		ws := gr.VertexWeight(s)
		wt := gr.VertexWeight(t)

		b := false
		if gr.OutDegree(s) == 1 && ws >= 10.0*we*we+10.0 {
			b = true
		}
		if gr.InDegree(t) == 1 && wt >= 10.0*we*we+10.0 {
			b = true
		}
		if !b {
			continue
		}

		if gr.OutDegree(s) == 1 {
			ee := gr.AddEdge(s, n)
			ee.Weight = ws
		}
		if gr.InDegree(t) == 1 {
			ee := gr.AddEdge(0, t)
			ee.Weight = wt
		}
		gr.RemoveEdge(e)
		return true
	}
	return false
}

// removeInnerBoundaries clears a vertex with unit in- and out-degree
// whose only neighbours are a sentinel and a vertex that keeps other
// connections, provided its coverage is flat (stddev below 0.01).
func removeInnerBoundaries(gr *SpliceGraph) bool {
	changed := false
	n := gr.NumVertices() - 1
	for i := 1; i < n; i++ {
		if gr.InDegree(i) != 1 || gr.OutDegree(i) != 1 {
			continue
		}
		s := gr.InEdges(i)[0].Source()
		t := gr.OutEdges(i)[0].Target()

		if s != 0 && t != n {
			continue
		}
		if s != 0 && gr.OutDegree(s) == 1 {
			continue
		}
		if t != n && gr.InDegree(t) == 1 {
			continue
		}
		if gr.VertexInfo(i).Stddev >= 0.01 {
			continue
		}

		gr.ClearVertex(i)
		changed = true
	}
	return changed
}

// removeSmallExons clears boundary exons shorter than minExon that
// have no position-adjacent neighbour on either side.
func removeSmallExons(gr *SpliceGraph, minExon int32) bool {
	changed := false
	n := gr.NumVertices() - 1
	for i := 1; i < n; i++ {
		vi := gr.VertexInfo(i)
		p1, p2 := vi.Lpos, vi.Rpos

		if p2-p1 >= minExon {
			continue
		}
		if gr.Degree(i) <= 0 {
			continue
		}

		b := true
		for _, e := range gr.InEdges(i) {
			s := e.Source()
			if s != 0 && gr.VertexInfo(s).Rpos == p1 {
				b = false
				break
			}
		}
		if b {
			for _, e := range gr.OutEdges(i) {
				t := e.Target()
				if t != n && gr.VertexInfo(t).Lpos == p2 {
					b = false
					break
				}
			}
		}
		if !b {
			continue
		}

		// only consider boundary small exons
		_, b1 := gr.Edge(0, i)
		_, b2 := gr.Edge(i, n)
		if !b1 && !b2 {
			continue
		}

		gr.ClearVertex(i)
		changed = true
	}
	return changed
}

// removeSmallJunctions removes crossing edges dominated by both the
// adjacent coverage next to their endpoint and the vertex coverage
// itself.
func removeSmallJunctions(gr *SpliceGraph) bool {
	doomed := make(map[*Edge]bool)
	n := gr.NumVertices() - 1
	for i := 1; i < n; i++ {
		if gr.Degree(i) <= 0 {
			continue
		}

		vi := gr.VertexInfo(i)
		p1, p2 := vi.Lpos, vi.Rpos
		wi := gr.VertexWeight(i)

		// max weight among position-adjacent predecessors
		ws := 0.0
		for _, e := range gr.InEdges(i) {
			s := e.Source()
			if s == 0 || gr.VertexInfo(s).Rpos != p1 {
				continue
			}
			if w := gr.VertexWeight(s); w > ws {
				ws = w
			}
		}

		for _, e := range gr.InEdges(i) {
			s := e.Source()
			if s == 0 || gr.VertexInfo(s).Rpos == p1 {
				continue
			}
			w := e.Weight
			if ws < 2.0*w*w+18.0 {
				continue
			}
			if wi < 2.0*w*w+18.0 {
				continue
			}
			doomed[e] = true
		}

		// max weight among position-adjacent successors
		wt := 0.0
		for _, e := range gr.OutEdges(i) {
			t := e.Target()
			if t == n || gr.VertexInfo(t).Lpos != p2 {
				continue
			}
			if w := gr.VertexWeight(t); w > wt {
				wt = w
			}
		}

		for _, e := range gr.OutEdges(i) {
			t := e.Target()
			if t == n || gr.VertexInfo(t).Lpos == p2 {
				continue
			}
			w := e.Weight
			if wt < 2.0*w*w+18.0 {
				continue
			}
			if wi < 2.0*w*w+18.0 {
				continue
			}
			doomed[e] = true
		}
	}

	if len(doomed) == 0 {
		return false
	}
	for e := range doomed {
		gr.RemoveEdge(e)
	}
	return true
}

// removeIntronContamination clears a trivial vertex lying inside the
// intron of an edge joining its two position-adjacent neighbours when
// the intron's coverage dominates the vertex.
func removeIntronContamination(gr *SpliceGraph, ratio float64) bool {
	changed := false
	n := gr.NumVertices() - 1
	for i := 1; i < n; i++ {
		if gr.InDegree(i) != 1 || gr.OutDegree(i) != 1 {
			continue
		}
		s := gr.InEdges(i)[0].Source()
		t := gr.OutEdges(i)[0].Target()
		wv := gr.VertexWeight(i)
		vi := gr.VertexInfo(i)

		if s == 0 || t == n {
			continue
		}
		if gr.VertexInfo(s).Rpos != vi.Lpos {
			continue
		}
		if gr.VertexInfo(t).Lpos != vi.Rpos {
			continue
		}
		ee, ok := gr.Edge(s, t)
		if !ok {
			continue
		}
		if wv > ee.Weight {
			continue
		}
		if wv > ratio {
			continue
		}

		gr.ClearVertex(i)
		changed = true
	}
	return changed
}

// maximalCover selects one maximum-weight edge per connected component
// of the sentinel-free undirected projection of the graph, skipping
// components whose best edge weighs less than 1.5. This forces every
// non-trivial component to retain at least one edge.
func maximalCover(gr *SpliceGraph) []*Edge {
	n := gr.NumVertices() - 1

	grouping := make([]int, gr.NumVertices())
	for i := range grouping {
		grouping[i] = i
	}

	type weightedEdge struct {
		w float64
		e *Edge
	}
	var ve []weightedEdge
	for _, e := range gr.Edges() {
		s, t := e.Source(), e.Target()
		if s == 0 || t == n {
			continue
		}
		joinNodes(grouping, s, t)
		ve = append(ve, weightedEdge{e.Weight, e})
	}

	sort.SliceStable(ve, func(i, j int) bool { return ve[i].w > ve[j].w })

	var cover []*Edge
	covered := bitset.New(uint(gr.NumVertices()))
	for _, we := range ve {
		if we.w < 1.5 {
			break
		}
		c1 := findRepNode(grouping, we.e.Source())
		c2 := findRepNode(grouping, we.e.Target())
		if c1 != c2 {
			continue
		}
		if covered.Test(uint(c1)) {
			continue
		}
		cover = append(cover, we.e)
		covered.Set(uint(c1))
	}
	return cover
}

func findRepNode(grouping []int, nodeID int) int {
	rep := nodeID
	for rep != grouping[rep] {
		rep = grouping[rep]
	}
	for nodeID != rep {
		next := grouping[nodeID]
		grouping[nodeID] = rep
		nodeID = next
	}
	return rep
}

func joinNodes(grouping []int, nodeID1, nodeID2 int) {
	rep1 := findRepNode(grouping, nodeID1)
	rep2 := findRepNode(grouping, nodeID2)
	if rep1 != rep2 {
		grouping[rep1] = rep2
	}
}

// keepSurvivingEdges keeps the edges weighing at least the surviving
// threshold plus the maximal cover, then augments the kept set until
// every incident vertex has a kept in-edge (unless it is the source)
// and a kept out-edge (unless it is the sink). All other edges are
// removed. The augmentation terminates because the kept set only
// grows.
func keepSurvivingEdges(gr *SpliceGraph, surviving float64) bool {
	se := make(map[*Edge]bool)
	sv1 := bitset.New(uint(gr.NumVertices())) // vertices with a kept in-edge
	sv2 := bitset.New(uint(gr.NumVertices())) // vertices with a kept out-edge

	keep := func(e *Edge) {
		se[e] = true
		sv1.Set(uint(e.Target()))
		sv2.Set(uint(e.Source()))
	}

	for _, e := range gr.Edges() {
		if e.Weight < surviving {
			continue
		}
		keep(e)
	}
	for _, e := range maximalCover(gr) {
		keep(e)
	}

	augmentSurvivingEdges(gr, se, sv1, sv2)
	return removeNonSurvivingEdges(gr, se)
}

func augmentSurvivingEdges(gr *SpliceGraph, se map[*Edge]bool, sv1, sv2 *bitset.BitSet) {
	n := gr.NumVertices() - 1
	for {
		changed := false
		for e := range se {
			s, t := e.Source(), e.Target()
			if s != 0 && !sv1.Test(uint(s)) {
				ee := gr.MaxInEdge(s)
				se[ee] = true
				sv1.Set(uint(s))
				sv2.Set(uint(ee.Source()))
				changed = true
				break
			}
			if t != n && !sv2.Test(uint(t)) {
				ee := gr.MaxOutEdge(t)
				se[ee] = true
				sv1.Set(uint(ee.Target()))
				sv2.Set(uint(t))
				changed = true
				break
			}
		}
		if !changed {
			return
		}
	}
}

func removeNonSurvivingEdges(gr *SpliceGraph, se map[*Edge]bool) bool {
	var doomed []*Edge
	for _, e := range gr.Edges() {
		if se[e] {
			continue
		}
		doomed = append(doomed, e)
	}
	for _, e := range doomed {
		gr.RemoveEdge(e)
	}
	return len(doomed) >= 1
}

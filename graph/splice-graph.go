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

import (
	"sort"

	"github.com/Shao-Group/meta-scallop/internal"
)

// VertexInfo is the genomic payload of a splice-graph vertex. Internal
// vertices are half-open exonic intervals [Lpos, Rpos); the source and
// sink sentinels are zero-width (Lpos == Rpos).
type VertexInfo struct {
	Lpos   int32
	Rpos   int32
	Length int32
	Count  int
	Stddev float64
}

// EdgeInfo accumulates junction evidence across samples.
type EdgeInfo struct {
	Weight float64
	Count  int
}

// Edge is a directed splice-graph edge. Source index is always
// strictly smaller than target index.
type Edge struct {
	s, t   int
	Weight float64
	Info   EdgeInfo
}

// Source returns the source vertex of e.
func (e *Edge) Source() int { return e.s }

// Target returns the target vertex of e.
func (e *Edge) Target() int { return e.t }

// SpliceGraph is a DAG whose internal vertices are candidate exonic
// intervals, ordered by increasing Lpos, and whose edges are candidate
// junctions. Vertex 0 is the source sentinel, vertex NumVertices()-1
// the sink sentinel; both are zero-width and are never removed.
type SpliceGraph struct {
	Chrm   string
	Strand byte
	Gid    string

	vinfo   []VertexInfo
	vweight []float64
	inn     [][]*Edge
	out     [][]*Edge

	// Lindex and Rindex map the left and right boundary position of
	// each internal vertex to its index; both are injective.
	Lindex map[int32]int
	Rindex map[int32]int
}

// NewSpliceGraph returns an empty splice graph with unknown strand.
func NewSpliceGraph() *SpliceGraph {
	return &SpliceGraph{
		Strand: '?',
		Lindex: make(map[int32]int),
		Rindex: make(map[int32]int),
	}
}

// Clear resets the graph to the empty state, keeping the metadata
// fields untouched.
func (gr *SpliceGraph) Clear() {
	gr.vinfo = gr.vinfo[:0]
	gr.vweight = gr.vweight[:0]
	gr.inn = gr.inn[:0]
	gr.out = gr.out[:0]
	gr.Lindex = make(map[int32]int)
	gr.Rindex = make(map[int32]int)
}

// NumVertices returns the number of vertices including the sentinels.
func (gr *SpliceGraph) NumVertices() int { return len(gr.vinfo) }

// AddVertex appends a vertex and returns its index.
func (gr *SpliceGraph) AddVertex() int {
	gr.vinfo = append(gr.vinfo, VertexInfo{})
	gr.vweight = append(gr.vweight, 0)
	gr.inn = append(gr.inn, nil)
	gr.out = append(gr.out, nil)
	return len(gr.vinfo) - 1
}

// AddEdge inserts an edge from s to t and returns it. Edges always
// point from a smaller to a larger vertex index.
func (gr *SpliceGraph) AddEdge(s, t int) *Edge {
	if s >= t || s < 0 || t >= len(gr.vinfo) {
		internal.Panicf("splice graph: invalid edge (%d, %d) in graph with %d vertices", s, t, len(gr.vinfo))
	}
	e := &Edge{s: s, t: t}
	gr.out[s] = append(gr.out[s], e)
	gr.inn[t] = append(gr.inn[t], e)
	return e
}

// RemoveEdge removes e from the graph.
func (gr *SpliceGraph) RemoveEdge(e *Edge) {
	gr.out[e.s] = removeEdge(gr.out[e.s], e)
	gr.inn[e.t] = removeEdge(gr.inn[e.t], e)
}

func removeEdge(edges []*Edge, e *Edge) []*Edge {
	for i, x := range edges {
		if x == e {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	internal.Panicf("splice graph: removing unknown edge (%d, %d)", e.s, e.t)
	return nil
}

// ClearVertex removes all edges incident to v.
func (gr *SpliceGraph) ClearVertex(v int) {
	for _, e := range append([]*Edge(nil), gr.inn[v]...) {
		gr.RemoveEdge(e)
	}
	for _, e := range append([]*Edge(nil), gr.out[v]...) {
		gr.RemoveEdge(e)
	}
}

// VertexWeight returns the weight of v.
func (gr *SpliceGraph) VertexWeight(v int) float64 { return gr.vweight[v] }

// SetVertexWeight sets the weight of v.
func (gr *SpliceGraph) SetVertexWeight(v int, w float64) { gr.vweight[v] = w }

// VertexInfo returns the payload of v.
func (gr *SpliceGraph) VertexInfo(v int) VertexInfo { return gr.vinfo[v] }

// SetVertexInfo sets the payload of v.
func (gr *SpliceGraph) SetVertexInfo(v int, vi VertexInfo) { gr.vinfo[v] = vi }

// InEdges returns the in-edge list of v. The slice is live; callers
// that mutate the graph while iterating must copy it first.
func (gr *SpliceGraph) InEdges(v int) []*Edge { return gr.inn[v] }

// OutEdges returns the out-edge list of v. The slice is live; callers
// that mutate the graph while iterating must copy it first.
func (gr *SpliceGraph) OutEdges(v int) []*Edge { return gr.out[v] }

// Edges returns all edges of the graph.
func (gr *SpliceGraph) Edges() []*Edge {
	var edges []*Edge
	for v := range gr.out {
		edges = append(edges, gr.out[v]...)
	}
	return edges
}

// InDegree returns the number of in-edges of v.
func (gr *SpliceGraph) InDegree(v int) int { return len(gr.inn[v]) }

// OutDegree returns the number of out-edges of v.
func (gr *SpliceGraph) OutDegree(v int) int { return len(gr.out[v]) }

// Degree returns the total number of edges incident to v.
func (gr *SpliceGraph) Degree(v int) int { return len(gr.inn[v]) + len(gr.out[v]) }

// MaxInEdge returns the in-edge of v with maximum weight. It panics
// when v has no in-edges.
func (gr *SpliceGraph) MaxInEdge(v int) *Edge {
	if len(gr.inn[v]) == 0 {
		internal.Panicf("splice graph: vertex %d has no in-edges", v)
	}
	best := gr.inn[v][0]
	for _, e := range gr.inn[v][1:] {
		if e.Weight > best.Weight {
			best = e
		}
	}
	return best
}

// MaxOutEdge returns the out-edge of v with maximum weight. It panics
// when v has no out-edges.
func (gr *SpliceGraph) MaxOutEdge(v int) *Edge {
	if len(gr.out[v]) == 0 {
		internal.Panicf("splice graph: vertex %d has no out-edges", v)
	}
	best := gr.out[v][0]
	for _, e := range gr.out[v][1:] {
		if e.Weight > best.Weight {
			best = e
		}
	}
	return best
}

// Edge returns the edge from s to t and whether it exists.
func (gr *SpliceGraph) Edge(s, t int) (*Edge, bool) {
	for _, e := range gr.out[s] {
		if e.t == t {
			return e, true
		}
	}
	return nil, false
}

// LocateVertex returns the internal vertex whose interval [Lpos, Rpos)
// contains pos, or -1 when no vertex covers it.
func (gr *SpliceGraph) LocateVertex(pos int32) int {
	n := len(gr.vinfo) - 1
	if n <= 1 {
		return -1
	}
	// internal vertices 1..n-1 are ordered by increasing Lpos
	k := sort.Search(n-1, func(i int) bool { return gr.vinfo[i+1].Lpos > pos })
	if k == 0 {
		return -1
	}
	v := k // vertex index of the last internal vertex with Lpos <= pos
	if gr.vinfo[v].Lpos <= pos && pos < gr.vinfo[v].Rpos {
		return v
	}
	return -1
}

// BuildVertexIndex recomputes Lindex and Rindex from the internal
// vertices. Duplicate boundary positions violate the one-to-one
// contract and panic.
func (gr *SpliceGraph) BuildVertexIndex() {
	gr.Lindex = make(map[int32]int)
	gr.Rindex = make(map[int32]int)
	n := len(gr.vinfo) - 1
	for i := 1; i < n; i++ {
		vi := gr.vinfo[i]
		if _, ok := gr.Lindex[vi.Lpos]; ok {
			internal.Panicf("splice graph: duplicate lpos %d in vertex index", vi.Lpos)
		}
		if _, ok := gr.Rindex[vi.Rpos]; ok {
			internal.Panicf("splice graph: duplicate rpos %d in vertex index", vi.Rpos)
		}
		gr.Lindex[vi.Lpos] = i
		gr.Rindex[vi.Rpos] = i
	}
}

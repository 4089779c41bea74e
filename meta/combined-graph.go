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

// Package meta merges per-sample splice graphs into combined graphs
// and resolves them back into meta splice graphs with phasing paths.
package meta

import (
	"fmt"
	"sort"

	"github.com/Shao-Group/meta-scallop/graph"
	"github.com/Shao-Group/meta-scallop/internal"
	"github.com/Shao-Group/meta-scallop/phase"
	"github.com/Shao-Group/meta-scallop/utils"
)

// WeightCount is accumulated evidence: summed weight and the number of
// samples contributing it. Regions merged by CombineChildren are the
// exception: they carry the summed weight and a count of 1.
type WeightCount struct {
	Weight float64
	Count  int
}

// Region is an exonic interval with its evidence.
type Region struct {
	Lpos, Rpos int32
	WeightCount
}

// Junction is a splice junction with its evidence.
type Junction struct {
	P1, P2 int32
	WeightCount
}

// Bound is a transcript start or end boundary with its evidence.
type Bound struct {
	Pos int32
	WeightCount
}

// RCluster groups phasing paths sharing the same inner coordinate
// chain; the outer endpoints and counts of the members are kept
// side by side.
type RCluster struct {
	VV []int32
	VL []int32
	VR []int32
	CC []int
}

// CombinedGraph accumulates the splice graphs of multiple samples over
// one chromosomal locus. Combine collects children and unions splice
// positions; CombineChildren digests the children into merged regions,
// junctions, and boundaries; Resolve rebuilds a meta splice graph and
// hyper set.
type CombinedGraph struct {
	NumCombined int
	Gid         string
	Chrm        string
	Strand      byte

	Regions   []Region
	Junctions []Junction
	SBounds   []Bound
	TBounds   []Bound
	Splices   []int32
	Phase     []RCluster

	Children []*CombinedGraph

	SMap map[int32]int32
	TMap map[int32]int32
}

// NewCombinedGraph returns an empty combined graph.
func NewCombinedGraph() *CombinedGraph {
	return &CombinedGraph{Strand: '?'}
}

// Build captures a per-sample splice graph and its hyper set.
func (cg *CombinedGraph) Build(gr *graph.SpliceGraph, hs *phase.HyperSet) {
	cg.Chrm = gr.Chrm
	cg.Strand = gr.Strand
	cg.NumCombined = 1

	cg.buildRegions(gr)
	cg.buildStartBounds(gr)
	cg.buildEndBounds(gr)
	cg.buildSplicesJunctions(gr)
	cg.buildPhase(gr, hs)
}

func (cg *CombinedGraph) buildRegions(gr *graph.SpliceGraph) {
	cg.Regions = cg.Regions[:0]
	n := gr.NumVertices() - 1
	for i := 1; i < n; i++ {
		vi := gr.VertexInfo(i)
		cg.Regions = append(cg.Regions, Region{
			Lpos:        vi.Lpos,
			Rpos:        vi.Rpos,
			WeightCount: WeightCount{Weight: gr.VertexWeight(i), Count: 1},
		})
	}
}

func (cg *CombinedGraph) buildStartBounds(gr *graph.SpliceGraph) {
	cg.SBounds = cg.SBounds[:0]
	n := gr.NumVertices() - 1
	for _, e := range gr.OutEdges(0) {
		t := e.Target()
		if t == n {
			continue
		}
		cg.SBounds = append(cg.SBounds, Bound{
			Pos:         gr.VertexInfo(t).Lpos,
			WeightCount: WeightCount{Weight: e.Weight, Count: 1},
		})
	}
}

func (cg *CombinedGraph) buildEndBounds(gr *graph.SpliceGraph) {
	cg.TBounds = cg.TBounds[:0]
	n := gr.NumVertices() - 1
	for _, e := range gr.InEdges(n) {
		s := e.Source()
		if s == 0 {
			continue
		}
		cg.TBounds = append(cg.TBounds, Bound{
			Pos:         gr.VertexInfo(s).Rpos,
			WeightCount: WeightCount{Weight: e.Weight, Count: 1},
		})
	}
}

func (cg *CombinedGraph) buildSplicesJunctions(gr *graph.SpliceGraph) {
	cg.Junctions = cg.Junctions[:0]
	cg.Splices = cg.Splices[:0]
	n := gr.NumVertices() - 1
	sp := make(map[int32]bool)
	for _, e := range gr.Edges() {
		s, t := e.Source(), e.Target()
		internal.Assert(s < t, "combined graph: edge against topological order")
		if s == 0 || t == n {
			continue
		}
		p1 := gr.VertexInfo(s).Rpos
		p2 := gr.VertexInfo(t).Lpos
		if p1 >= p2 {
			continue
		}
		cg.Junctions = append(cg.Junctions, Junction{
			P1:          p1,
			P2:          p2,
			WeightCount: WeightCount{Weight: e.Weight, Count: 1},
		})
		sp[p1] = true
		sp[p2] = true
	}
	for p := range sp {
		cg.Splices = append(cg.Splices, p)
	}
	sort.Slice(cg.Splices, func(i, j int) bool { return cg.Splices[i] < cg.Splices[j] })
}

func (cg *CombinedGraph) buildPhase(gr *graph.SpliceGraph, hs *phase.HyperSet) {
	cg.Phase = cg.Phase[:0]
	index := make(map[string]int)
	for k, list := range hs.Lists {
		w := hs.Counts[k]
		if len(list) == 0 {
			continue
		}
		v := make([]int, len(list))
		for i, x := range list {
			v[i] = x + 1 // hyper-set lists are stored shifted by -1
		}
		vv := graph.BuildExonCoordinatesFromPath(gr, v)
		if len(vv) <= 1 {
			continue
		}
		zz := vv[1 : len(vv)-1]
		key := coordKey(zz)
		if t, ok := index[key]; ok {
			cg.Phase[t].VL = append(cg.Phase[t].VL, vv[0])
			cg.Phase[t].VR = append(cg.Phase[t].VR, vv[len(vv)-1])
			cg.Phase[t].CC = append(cg.Phase[t].CC, w)
			continue
		}
		index[key] = len(cg.Phase)
		cg.Phase = append(cg.Phase, RCluster{
			VV: append([]int32(nil), zz...),
			VL: []int32{vv[0]},
			VR: []int32{vv[len(vv)-1]},
			CC: []int{w},
		})
	}
}

// Combine absorbs another combined graph, unioning only the splice
// sets; the heavier merge waits for CombineChildren.
func (cg *CombinedGraph) Combine(gt *CombinedGraph) {
	if len(cg.Children) == 0 {
		self := *cg
		self.Children = nil
		cg.Children = append(cg.Children, &self)
	}
	if len(gt.Children) == 0 {
		cg.Children = append(cg.Children, gt)
	} else {
		cg.Children = append(cg.Children, gt.Children...)
	}

	if cg.Chrm == "" {
		cg.Chrm = gt.Chrm
	}
	if cg.Strand == '?' {
		cg.Strand = gt.Strand
	}
	internal.Assert(gt.Chrm == cg.Chrm, "combining graphs of different chromosomes")
	internal.Assert(gt.Strand == cg.Strand, "combining graphs of different strands")

	cg.NumCombined += gt.NumCombined
	cg.Splices = utils.UnionSorted(cg.Splices, gt.Splices)
}

// GetOverlappedSplicePositions counts how many of the given sorted
// positions are splices of this graph.
func (cg *CombinedGraph) GetOverlappedSplicePositions(v []int32) int {
	return utils.IntersectSortedCount(v, cg.Splices)
}

// CombineChildren merges the regions, junctions, and boundaries of all
// children.
func (cg *CombinedGraph) CombineChildren() {
	if len(cg.Children) == 0 {
		return
	}

	var imap SplitIntervalMap
	mj := make(map[[2]int32]WeightCount)
	ms := make(map[int32]WeightCount)
	mt := make(map[int32]WeightCount)
	// the first child may be a copy of this graph sharing the slice
	// backing arrays, so replace the slices instead of truncating
	cg.Phase = nil

	num := 0
	for _, gt := range cg.Children {
		combineRegions(&imap, gt)
		combineJunctions(mj, gt)
		combineBounds(ms, gt.SBounds)
		combineBounds(mt, gt.TBounds)
		num += gt.NumCombined
	}
	internal.Assert(num == cg.NumCombined, "combined sample count mismatch")

	cg.Regions = nil
	for _, seg := range imap.Segments() {
		cg.Regions = append(cg.Regions, Region{
			Lpos:        seg.Lpos,
			Rpos:        seg.Rpos,
			WeightCount: WeightCount{Weight: float64(seg.Weight), Count: 1},
		})
	}

	cg.Junctions = nil
	for p, d := range mj {
		cg.Junctions = append(cg.Junctions, Junction{P1: p[0], P2: p[1], WeightCount: d})
	}
	sort.Slice(cg.Junctions, func(i, j int) bool {
		if cg.Junctions[i].P1 != cg.Junctions[j].P1 {
			return cg.Junctions[i].P1 < cg.Junctions[j].P1
		}
		return cg.Junctions[i].P2 < cg.Junctions[j].P2
	})

	cg.SBounds = sortedBounds(ms)
	cg.TBounds = sortedBounds(mt)
}

func combineRegions(imap *SplitIntervalMap, gt *CombinedGraph) {
	for _, r := range gt.Regions {
		imap.Add(r.Lpos, r.Rpos, int(r.Weight))
	}
}

func combineJunctions(m map[[2]int32]WeightCount, gt *CombinedGraph) {
	for _, j := range gt.Junctions {
		p := [2]int32{j.P1, j.P2}
		d := m[p]
		d.Weight += j.Weight
		d.Count += j.Count
		m[p] = d
	}
}

func combineBounds(m map[int32]WeightCount, bounds []Bound) {
	for _, b := range bounds {
		d := m[b.Pos]
		d.Weight += b.Weight
		d.Count += b.Count
		m[b.Pos] = d
	}
}

func sortedBounds(m map[int32]WeightCount) []Bound {
	bounds := make([]Bound, 0, len(m))
	for p, d := range m {
		bounds = append(bounds, Bound{Pos: p, WeightCount: d})
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i].Pos < bounds[j].Pos })
	return bounds
}

// Resolve rebuilds a meta splice graph and hyper set from the merged
// elements.
func (cg *CombinedGraph) Resolve(gr *graph.SpliceGraph, hs *phase.HyperSet, params *graph.Parameters) {
	cg.GroupJunctions(params.MaxGroupJunctionDistance)
	cg.BuildSpliceGraph(gr)
	cg.SMap = graph.GroupStartBoundaries(gr, params.MaxGroupBoundaryDistance)
	cg.TMap = graph.GroupEndBoundaries(gr, params.MaxGroupBoundaryDistance)
	cg.BuildPhasingPaths(gr, hs)
}

// GroupJunctions drops junctions dominated by a nearby junction: the
// winner needs a tenfold weight and a strictly larger sample count,
// the loser at most two samples, the winner weight at most 100.
func (cg *CombinedGraph) GroupJunctions(maxGroupJunctionDistance int32) {
	fb := make(map[int]bool)
	for i := 0; i < len(cg.Junctions); i++ {
		if fb[i] {
			continue
		}
		x := cg.Junctions[i]
		for j := i + 1; j < len(cg.Junctions); j++ {
			if fb[j] {
				continue
			}
			y := cg.Junctions[j]
			d1 := abs32(x.P1 - y.P1)
			d2 := abs32(x.P2 - y.P2)
			if d1+d2 >= maxGroupJunctionDistance {
				continue
			}
			if 10*x.Weight < y.Weight && x.Count < y.Count && x.Count <= 2 && y.Weight <= 100 {
				fb[i] = true
			}
			if x.Weight > 10*y.Weight && x.Count > y.Count && y.Count <= 2 && x.Weight <= 100 {
				fb[j] = true
			}
		}
	}

	if len(fb) == 0 {
		return
	}
	var v []Junction
	for k, j := range cg.Junctions {
		if fb[k] {
			continue
		}
		v = append(v, j)
	}
	cg.Junctions = v
}

// BuildSpliceGraph materialises the merged elements as a splice graph:
// sentinels at the outermost boundaries, one vertex per region,
// boundary and junction edges, and adjacency edges between regions
// sharing a position.
func (cg *CombinedGraph) BuildSpliceGraph(gr *graph.SpliceGraph) {
	gr.Clear()
	gr.Gid = cg.Gid
	gr.Chrm = cg.Chrm
	gr.Strand = cg.Strand

	gr.AddVertex()
	sb := cg.GetLeftmostBound()
	gr.SetVertexInfo(0, graph.VertexInfo{Lpos: sb.Pos, Rpos: sb.Pos})
	gr.SetVertexWeight(0, 0)

	for i, r := range cg.Regions {
		gr.AddVertex()
		gr.SetVertexInfo(i+1, graph.VertexInfo{
			Lpos:   r.Lpos,
			Rpos:   r.Rpos,
			Length: r.Rpos - r.Lpos,
			Count:  r.Count,
		})
		gr.SetVertexWeight(i+1, r.Weight)
	}

	gr.AddVertex()
	tb := cg.GetRightmostBound()
	n := len(cg.Regions) + 1
	gr.SetVertexInfo(n, graph.VertexInfo{Lpos: tb.Pos, Rpos: tb.Pos})
	gr.SetVertexWeight(n, 0)

	gr.BuildVertexIndex()

	for _, b := range cg.SBounds {
		k, ok := gr.Lindex[b.Pos]
		internal.Assert(ok, "start bound position missing from vertex index")
		e := gr.AddEdge(0, k)
		e.Weight = b.Weight
		e.Info = graph.EdgeInfo{Weight: b.Weight, Count: b.Count}
	}

	for _, b := range cg.TBounds {
		k, ok := gr.Rindex[b.Pos]
		internal.Assert(ok, "end bound position missing from vertex index")
		e := gr.AddEdge(k, n)
		e.Weight = b.Weight
		e.Info = graph.EdgeInfo{Weight: b.Weight, Count: b.Count}
	}

	for _, j := range cg.Junctions {
		s, ok1 := gr.Rindex[j.P1]
		t, ok2 := gr.Lindex[j.P2]
		internal.Assert(ok1, "junction left position missing from vertex index")
		internal.Assert(ok2, "junction right position missing from vertex index")
		e := gr.AddEdge(s, t)
		e.Weight = j.Weight
		e.Info = graph.EdgeInfo{Weight: j.Weight, Count: j.Count}
	}

	// connect adjacent regions
	for i := 1; i < len(cg.Regions); i++ {
		ss := cg.Regions[i-1]
		tt := cg.Regions[i]
		internal.Assert(ss.Rpos <= tt.Lpos, "regions out of order")
		if ss.Rpos != tt.Lpos {
			continue
		}

		w := ss.Weight
		if gr.OutDegree(i) >= gr.InDegree(i+1) {
			w = tt.Weight
		}
		c := ss.Count
		if tt.Count < c {
			c = tt.Count
		}
		if w < 1 {
			w = 1
		}

		e := gr.AddEdge(i, i+1)
		e.Weight = w
		e.Info = graph.EdgeInfo{Weight: w, Count: c}
	}
}

// BuildPhasingPaths materialises every phase cluster (own and
// children's) as vertex paths of the resolved graph and fills hs.
func (cg *CombinedGraph) BuildPhasingPaths(gr *graph.SpliceGraph, hs *phase.HyperSet) {
	hs.Clear()
	for i := range cg.Phase {
		cg.buildPhasingPath(gr, hs, &cg.Phase[i])
	}
	for _, gt := range cg.Children {
		for i := range gt.Phase {
			cg.buildPhasingPath(gr, hs, &gt.Phase[i])
		}
	}
}

func (cg *CombinedGraph) buildPhasingPath(gr *graph.SpliceGraph, hs *phase.HyperSet, rc *RCluster) {
	uu, ok := graph.BuildPathFromIntronCoordinates(gr, rc.VV)
	internal.Assert(ok, "phase cluster chain missing from resolved graph")

	for j := range rc.VL {
		p1 := rc.VL[j]
		p2 := rc.VR[j]
		w := rc.CC[j]

		internal.Assert(p1 >= 0 && p2 >= 0, "phase cluster with sentinel endpoint")

		if q, ok := cg.SMap[p1]; ok {
			p1 = q
		}
		if q, ok := cg.TMap[p2]; ok {
			p2 = q
		}

		a, ok1 := gr.Lindex[p1]
		b, ok2 := gr.Rindex[p2]
		internal.Assert(ok1, "phase cluster left endpoint missing from vertex index")
		internal.Assert(ok2, "phase cluster right endpoint missing from vertex index")

		var vv []int
		if len(uu) == 0 {
			for k := a; k <= b; k++ {
				vv = append(vv, k)
			}
		} else {
			for k := a; k < uu[0]; k++ {
				vv = append(vv, k)
			}
			vv = append(vv, uu...)
			for k := uu[len(uu)-1] + 1; k <= b; k++ {
				vv = append(vv, k)
			}
		}
		hs.AddNodeList(vv, w)
	}
}

// GetLeftmostBound returns the start bound with the smallest position,
// or a bound at -1 when none exist.
func (cg *CombinedGraph) GetLeftmostBound() Bound {
	x := Bound{Pos: -1}
	for _, b := range cg.SBounds {
		if x.Pos == -1 || b.Pos < x.Pos {
			x = b
		}
	}
	return x
}

// GetRightmostBound returns the end bound with the largest position,
// or a bound at -1 when none exist.
func (cg *CombinedGraph) GetRightmostBound() Bound {
	x := Bound{Pos: -1}
	for _, b := range cg.TBounds {
		if x.Pos == -1 || b.Pos > x.Pos {
			x = b
		}
	}
	return x
}

// Clear resets the combined graph.
func (cg *CombinedGraph) Clear() {
	cg.NumCombined = 0
	cg.Gid = ""
	cg.Chrm = ""
	cg.Strand = '.'
	cg.Splices = nil
	cg.Regions = nil
	cg.Junctions = nil
	cg.SBounds = nil
	cg.TBounds = nil
	cg.Phase = nil
	cg.Children = nil
	cg.SMap = nil
	cg.TMap = nil
}

// Print writes a summary of the combined graph to standard output.
func (cg *CombinedGraph) Print(index int) {
	fmt.Printf("combined-graph %d: #combined = %d, chrm = %s, strand = %c, #regions = %d, #sbounds = %d, #tbounds = %d, #junctions = %d, #phasing-paths = %d\n",
		index, cg.NumCombined, cg.Chrm, cg.Strand, len(cg.Regions), len(cg.SBounds), len(cg.TBounds), len(cg.Junctions), len(cg.Phase))
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func coordKey(v []int32) string {
	buf := make([]byte, 0, 4*len(v))
	for _, p := range v {
		buf = append(buf, byte(p), byte(p>>8), byte(p>>16), byte(p>>24))
	}
	return string(buf)
}

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

package bridge

import (
	"sort"

	"github.com/Shao-Group/meta-scallop/graph"
	"github.com/Shao-Group/meta-scallop/internal"
	"github.com/Shao-Group/meta-scallop/phase"
	"github.com/Shao-Group/meta-scallop/utils"
)

// stackInfinity fills fresh bottleneck stacks; any real edge weight
// displaces it.
const stackInfinity = 999999

// entry is one of the top-K partial solutions reaching a vertex in the
// bridging table. The stack keeps the smallest edge weights seen along
// the path in ascending order; trace1/trace2 point at the predecessor
// entry.
type entry struct {
	stack  []int
	length int32
	trace1 int
	trace2 int
}

// entryCompare ranks DP entries: lexicographically larger stack first,
// shorter genomic length on ties.
func entryCompare(x, y *entry) bool {
	if c := compareStacks(x.stack, y.stack); c != 0 {
		return c < 0
	}
	return x.length < y.length
}

// Solver bridges a set of fragment clusters over a revised splice
// graph. Opt holds, for each cluster, the chosen bridge (Type
// Unbridged when no candidate satisfied the fragment-length window).
type Solver struct {
	gr     *graph.SpliceGraph
	vc     []PereadsCluster
	params *graph.Parameters

	lengthLow  int32
	lengthHigh int32

	vpairs [][2]int
	piers  []Pier
	pindex map[[2]int]int

	Opt []BridgePath
}

// Solve runs the full bridging pipeline: locate the bridging vertices
// of every cluster, build piers, nominate candidate paths with the
// top-K dynamic program, and vote per fragment under the length
// window [low, high].
func Solve(gr *graph.SpliceGraph, vc []PereadsCluster, params *graph.Parameters, low, high int32) *Solver {
	sv := &Solver{
		gr:         gr,
		vc:         vc,
		params:     params,
		lengthLow:  low,
		lengthHigh: high,
	}
	sv.buildBridgingVertices()
	sv.buildPiers()
	sv.nominate()
	sv.vote()
	return sv
}

// buildBridgingVertices locates, for each cluster, the vertex covering
// the end of the left mate and the vertex covering the start of the
// right mate.
func (sv *Solver) buildBridgingVertices() {
	sv.vpairs = make([][2]int, len(sv.vc))
	for i := range sv.vc {
		pc := &sv.vc[i]
		v1 := sv.gr.LocateVertex(pc.Bounds[1] - 1)
		v2 := sv.gr.LocateVertex(pc.Bounds[2])
		sv.vpairs[i] = [2]int{v1, v2}
	}
}

// buildPiers deduplicates the located vertex pairs into piers.
func (sv *Solver) buildPiers() {
	sv.piers = sv.piers[:0]
	seen := make(map[[2]int]bool)
	for _, p := range sv.vpairs {
		if p[0] < 0 || p[1] < 0 {
			continue
		}
		if p[0] >= p[1] {
			continue
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		sv.piers = append(sv.piers, Pier{Bs: p[0], Bt: p[1]})
	}
}

func (sv *Solver) buildPiersIndex() {
	sv.pindex = make(map[[2]int]int)
	for k := range sv.piers {
		sv.pindex[[2]int{sv.piers[k].Bs, sv.piers[k].Bt}] = k
	}
}

// nominate fills every pier with its top-K candidate bridges. Piers
// sharing a source vertex share one dynamic-programming table.
func (sv *Solver) nominate() {
	if len(sv.piers) == 0 {
		return
	}

	sort.Slice(sv.piers, func(i, j int) bool {
		if sv.piers[i].Bs != sv.piers[j].Bs {
			return sv.piers[i].Bs < sv.piers[j].Bs
		}
		return sv.piers[i].Bt < sv.piers[j].Bt
	})

	for b1 := 0; b1 < len(sv.piers); {
		b2 := b1
		for b2+1 < len(sv.piers) && sv.piers[b2+1].Bs == sv.piers[b1].Bs {
			b2++
		}
		k1 := sv.piers[b2].Bs
		k2 := sv.piers[b2].Bt

		table := sv.dynamicProgramming(k1, k2)

		for b := b1; b <= b2; b++ {
			bt := sv.piers[b].Bt
			paths := sv.traceBack(bt, table)
			for j, v := range paths {
				p := BridgePath{
					Score: float64(table[bt][j].stack[0]),
					Stack: table[bt][j].stack,
					V:     v,
					Chain: graph.BuildIntronCoordinatesFromPath(sv.gr, v),
				}
				sv.piers[b].Bridges = append(sv.piers[b].Bridges, p)
			}
			sort.SliceStable(sv.piers[b].Bridges, func(x, y int) bool {
				return compareBridgePathStack(&sv.piers[b].Bridges[x], &sv.piers[b].Bridges[y])
			})
		}

		b1 = b2 + 1
	}
}

// dynamicProgramming fills the top-K table from source vertex k1 up to
// vertex k2. Edge weights are truncated to integers before they enter
// the bottleneck stacks.
func (sv *Solver) dynamicProgramming(k1, k2 int) [][]entry {
	n := sv.gr.NumVertices()
	internal.Assert(k1 >= 0 && k1 < n, "bridging source out of range")
	internal.Assert(k2 >= 0 && k2 < n, "bridging sink out of range")

	table := make([][]entry, n)

	first := entry{
		stack:  make([]int, sv.params.BridgeDPStackSize),
		length: sv.gr.VertexInfo(k1).Rpos - sv.gr.VertexInfo(k1).Lpos,
		trace1: -1,
		trace2: -1,
	}
	for i := range first.stack {
		first.stack[i] = stackInfinity
	}
	table[k1] = []entry{first}

	for k := k1 + 1; k <= k2; k++ {
		var v []entry
		length := sv.gr.VertexInfo(k).Rpos - sv.gr.VertexInfo(k).Lpos
		for _, e := range sv.gr.InEdges(k) {
			j := e.Source()
			if j < k1 {
				continue
			}
			w := int(e.Weight)
			for i := range table[j] {
				v = append(v, entry{
					stack:  updateStack(table[j][i].stack, w),
					length: table[j][i].length + length,
					trace1: j,
					trace2: i,
				})
			}
		}

		sort.SliceStable(v, func(x, y int) bool { return entryCompare(&v[x], &v[y]) })
		if len(v) > sv.params.BridgeDPSolutionSize {
			v = v[:sv.params.BridgeDPSolutionSize]
		}
		table[k] = v
	}
	return table
}

// updateStack inserts s into the ascending bottleneck stack, dropping
// the largest element to keep the width fixed.
func updateStack(v []int, s int) []int {
	stack := make([]int, len(v))
	i := 0
	for ; i < len(v); i++ {
		if v[i] > s {
			break
		}
		stack[i] = v[i]
	}
	if i < len(v) {
		stack[i] = s
		copy(stack[i+1:], v[i:len(v)-1])
	}
	return stack
}

// traceBack assembles the vertex paths of all table entries at k.
func (sv *Solver) traceBack(k int, table [][]entry) [][]int {
	var vv [][]int
	for i := range table[k] {
		var v []int
		p, q := k, i
		for {
			v = append(v, p)
			e := &table[p][q]
			p, q = e.trace1, e.trace2
			if p < 0 {
				break
			}
		}
		for x, y := 0, len(v)-1; x < y; x, y = x+1, y-1 {
			v[x], v[y] = v[y], v[x]
		}
		vv = append(vv, v)
	}
	return vv
}

// vote picks, for every cluster, the first candidate bridge whose
// implied fragment length falls inside the window.
func (sv *Solver) vote() {
	sv.buildPiersIndex()
	sv.Opt = make([]BridgePath, len(sv.vc))
	for i := range sv.vc {
		sv.voteCluster(i, &sv.Opt[i])
	}
}

func (sv *Solver) voteCluster(r int, bbp *BridgePath) {
	bbp.Type = Unbridged
	ss := sv.vpairs[r][0]
	tt := sv.vpairs[r][1]
	if ss < 0 || tt < 0 {
		return
	}

	pc := &sv.vc[r]

	pathType := 0
	var chains [][]int32
	var wholes [][]int32
	var scores []float64
	var paths [][]int

	if ss >= tt {
		// the mates overlap on the same vertex; their chains must agree
		w, ok := graph.MergeIntronChains(pc.Chain1, pc.Chain2)
		if !ok {
			return
		}
		pathType = OverlappedMates
		chains = append(chains, nil)
		wholes = append(wholes, w)
		scores = append(scores, OverlapScore)
		paths = append(paths, nil)
	} else if k, ok := sv.pindex[[2]int{ss, tt}]; ok {
		pathType = GraphBridged
		if len(pc.Chain1) >= 1 && len(pc.Chain2) >= 1 {
			internal.Assert(pc.Chain1[len(pc.Chain1)-1] < pc.Chain2[0], "mate chains out of order")
		}
		for e := range sv.piers[k].Bridges {
			pb := &sv.piers[k].Bridges[e]
			w := make([]int32, 0, len(pc.Chain1)+len(pb.Chain)+len(pc.Chain2))
			w = append(w, pc.Chain1...)
			w = append(w, pb.Chain...)
			w = append(w, pc.Chain2...)
			wholes = append(wholes, w)
			chains = append(chains, pb.Chain)
			scores = append(scores, pb.Score)
			paths = append(paths, pb.V)
		}
	}

	internal.Assert(len(wholes) == len(chains), "bridging candidates out of sync")
	if len(chains) == 0 {
		return
	}

	be := -1
	for e := range chains {
		checkBridgeCandidate(pc, wholes[e], chains[e])

		intron := graph.GetTotalLengthOfIntrons(wholes[e])
		length := pc.Bounds[3] - pc.Bounds[0] - intron
		if length < sv.lengthLow || length > sv.lengthHigh {
			continue
		}
		be = e
		break
	}
	if be < 0 {
		return
	}

	bbp.Type = pathType
	bbp.Score = scores[be]
	bbp.Chain = chains[be]
	bbp.Whole = wholes[be]
	bbp.V = paths[be]
}

func checkBridgeCandidate(pc *PereadsCluster, whole, chain []int32) {
	internal.Assert(utils.IncreasingSequence(whole), "bridged chain is not increasing")
	internal.Assert(utils.IncreasingSequence(chain), "bridge chain is not increasing")
	if len(whole) >= 1 {
		internal.Assert(whole[0] > pc.Bounds[0], "bridged chain starts before the fragment")
		internal.Assert(whole[len(whole)-1] < pc.Bounds[3], "bridged chain ends after the fragment")
	}
	if len(pc.Chain1) > 0 && len(chain) > 0 {
		internal.Assert(pc.Chain1[len(pc.Chain1)-1] < chain[0], "bridge chain overlaps the left mate")
	}
	if len(pc.Chain2) > 0 && len(chain) > 0 {
		internal.Assert(pc.Chain2[0] > chain[len(chain)-1], "bridge chain overlaps the right mate")
	}
}

// CollectUnbridgedClusters returns the clusters whose vote failed.
func (sv *Solver) CollectUnbridgedClusters() []PereadsCluster {
	var v []PereadsCluster
	for i := range sv.Opt {
		if sv.Opt[i].Type >= 0 {
			continue
		}
		v = append(v, sv.vc[i])
	}
	return v
}

// BuildPhaseSet adds the phases of every cluster to ps: the full
// bridged chain for bridged clusters, the two mate chains separately
// for unbridged ones.
func (sv *Solver) BuildPhaseSet(ps *phase.PhaseSet) {
	internal.Assert(len(sv.Opt) == len(sv.vc), "bridging results out of sync")
	for i := range sv.vc {
		if sv.Opt[i].Type >= 0 {
			AddPhasesFromBridgedPereadsCluster(&sv.vc[i], &sv.Opt[i], ps)
		} else {
			AddPhasesFromUnbridgedPereadsCluster(&sv.vc[i], ps)
		}
	}
}

// AddPhasesFromBridgedPereadsCluster records the extended full chain
// of a bridged cluster.
func AddPhasesFromBridgedPereadsCluster(pc *PereadsCluster, bbp *BridgePath, ps *phase.PhaseSet) {
	internal.Assert(bbp.Type >= 0, "cluster is not bridged")
	v := make([]int32, 0, len(bbp.Whole)+2)
	v = append(v, pc.Extend[0])
	v = append(v, bbp.Whole...)
	v = append(v, pc.Extend[3])
	internal.Assert(utils.IncreasingSequence(v), "bridged phase is not increasing")
	ps.Add(v, pc.Count)
}

// AddPhasesFromUnbridgedPereadsCluster records the two mate chains of
// an unbridged cluster separately.
func AddPhasesFromUnbridgedPereadsCluster(pc *PereadsCluster, ps *phase.PhaseSet) {
	v1 := make([]int32, 0, len(pc.Chain1)+2)
	v1 = append(v1, pc.Extend[0])
	v1 = append(v1, pc.Chain1...)
	v1 = append(v1, pc.Extend[1])
	internal.Assert(utils.IncreasingSequence(v1), "left mate phase is not increasing")
	ps.Add(v1, pc.Count)

	v2 := make([]int32, 0, len(pc.Chain2)+2)
	v2 = append(v2, pc.Extend[2])
	v2 = append(v2, pc.Chain2...)
	v2 = append(v2, pc.Extend[3])
	internal.Assert(utils.IncreasingSequence(v2), "right mate phase is not increasing")
	ps.Add(v2, pc.Count)
}

// Stats reports how many clusters and reads were bridged.
func (sv *Solver) Stats() (bridgedClusters, totalClusters, bridgedReads, totalReads int) {
	internal.Assert(len(sv.vc) == len(sv.Opt), "bridging results out of sync")
	totalClusters = len(sv.vc)
	for i := range sv.vc {
		totalReads += sv.vc[i].Count
		if sv.Opt[i].Type < 0 {
			continue
		}
		bridgedReads += sv.vc[i].Count
		bridgedClusters++
	}
	return
}

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

// Translations between vertex paths and genomic coordinate chains.
//
// An intron chain is a sorted vector [p0, q0, p1, q1, ...] of even
// length where each (p, q) is a half-open intron. An exon chain
// alternates exon boundaries [l0, r0, l1, r1, ...]; the sentinel
// coordinates -1 and -2 mark an open left and right end.

import (
	"github.com/Shao-Group/meta-scallop/internal"
	"github.com/Shao-Group/meta-scallop/utils"
)

// OpenLeft and OpenRight are the exon-chain markers emitted when a
// path starts at the source sentinel or ends at the sink sentinel.
const (
	OpenLeft  int32 = -1
	OpenRight int32 = -2
)

// GetTotalLengthOfIntrons sums the intron lengths of a chain.
func GetTotalLengthOfIntrons(chain []int32) int32 {
	internal.Assert(len(chain)%2 == 0, "intron chain has odd length")
	var x int32
	for k := 0; k+1 < len(chain); k += 2 {
		p, q := chain[k], chain[k+1]
		internal.Assert(p < q, "intron chain is not increasing")
		x += q - p
	}
	return x
}

// BuildExonCoordinatesFromPath converts a vertex path into an exon
// chain. Consecutive vertices sharing a boundary position merge into a
// single exon; a leading source sentinel contributes two OpenLeft
// markers and a trailing sink sentinel two OpenRight markers.
func BuildExonCoordinatesFromPath(gr *SpliceGraph, v []int) []int32 {
	var vv []int32
	if len(v) == 0 {
		return vv
	}

	n := gr.NumVertices() - 1
	pre := int32(-99999)

	if v[0] == 0 {
		vv = append(vv, OpenLeft, OpenLeft)
	}

	for _, p := range v {
		if p == 0 || p == n {
			continue
		}
		vi := gr.VertexInfo(p)
		if vi.Lpos == pre {
			pre = vi.Rpos
			continue
		}
		if pre >= 0 {
			vv = append(vv, pre)
		}
		vv = append(vv, vi.Lpos)
		pre = vi.Rpos
	}

	if pre >= 0 {
		vv = append(vv, pre)
	}
	if v[len(v)-1] == n {
		vv = append(vv, OpenRight, OpenRight)
	}
	return vv
}

// BuildIntronCoordinatesFromPath converts a vertex path into an intron
// chain, emitting one intron for every consecutive pair separated by a
// positive genomic gap.
func BuildIntronCoordinatesFromPath(gr *SpliceGraph, v []int) []int32 {
	var vv []int32
	for i := 0; i+1 < len(v); i++ {
		pp := gr.VertexInfo(v[i]).Rpos
		qq := gr.VertexInfo(v[i+1]).Lpos
		internal.Assert(pp <= qq, "vertex path is not increasing")
		if pp == qq {
			continue
		}
		vv = append(vv, pp, qq)
	}
	return vv
}

// BuildPathFromIntronCoordinates reconstructs the vertex path spelling
// the given intron chain. Consecutive piers are threaded with runs of
// continuous vertices. The second return value is false when a
// coordinate is missing from the vertex index or the gap between two
// introns is not continuous.
func BuildPathFromIntronCoordinates(gr *SpliceGraph, v []int32) ([]int, bool) {
	internal.Assert(len(v)%2 == 0, "intron chain has odd length")
	if len(v) == 0 {
		return nil, true
	}

	n := len(v) / 2
	ks := make([]int, n)
	kt := make([]int, n)
	for k := 0; k < n; k++ {
		p, q := v[2*k], v[2*k+1]
		internal.Assert(p >= 0 && q >= 0 && p <= q, "invalid intron coordinates")
		kp, ok1 := gr.Rindex[p]
		kq, ok2 := gr.Lindex[q]
		if !ok1 || !ok2 {
			return nil, false
		}
		ks[k] = kp
		kt[k] = kq
	}

	vv := []int{ks[0]}
	for k := 0; k+1 < n; k++ {
		a, b := kt[k], ks[k+1]
		internal.Assert(a <= b, "intron chain vertices out of order")
		if !CheckContinuousVertices(gr, a, b) {
			return nil, false
		}
		for j := a; j <= b; j++ {
			vv = append(vv, j)
		}
	}
	vv = append(vv, kt[n-1])
	return vv, true
}

// BuildPathFromExonCoordinates reconstructs the vertex path covering
// the given exon chain. The second return value is false when a
// boundary is missing from the vertex index or an exon does not map to
// a continuous vertex run.
func BuildPathFromExonCoordinates(gr *SpliceGraph, v []int32) ([]int, bool) {
	internal.Assert(len(v)%2 == 0, "exon chain has odd length")
	if len(v) == 0 {
		return nil, true
	}

	n := len(v) / 2
	ks := make([]int, n)
	kt := make([]int, n)
	for k := 0; k < n; k++ {
		p, q := v[2*k], v[2*k+1]
		internal.Assert(p >= 0 && q >= 0 && p <= q, "invalid exon coordinates")
		kp, ok1 := gr.Lindex[p]
		kq, ok2 := gr.Rindex[q]
		if !ok1 || !ok2 {
			return nil, false
		}
		ks[k] = kp
		kt[k] = kq
	}

	var vv []int
	for k := 0; k < n; k++ {
		a, b := ks[k], kt[k]
		if a > b {
			return nil, false
		}
		if !CheckContinuousVertices(gr, a, b) {
			return nil, false
		}
		for j := a; j <= b; j++ {
			vv = append(vv, j)
		}
	}

	for i := 0; i+1 < len(vv); i++ {
		internal.Assert(vv[i] < vv[i+1], "exon path is not increasing")
	}
	return vv, true
}

// BuildPathFromMixedCoordinates reconstructs a vertex path from a
// chain whose outer pair are exon endpoints and whose middle encodes
// introns.
func BuildPathFromMixedCoordinates(gr *SpliceGraph, v []int32) ([]int, bool) {
	internal.Assert(len(v)%2 == 0, "mixed chain has odd length")
	if len(v) == 0 {
		return nil, true
	}

	u1 := gr.LocateVertex(v[0])
	u2 := gr.LocateVertex(v[len(v)-1] - 1)
	if u1 < 0 || u2 < 0 {
		return nil, false
	}

	var vv []int
	if len(v) == 2 {
		for k := u1; k <= u2; k++ {
			vv = append(vv, k)
		}
		return vv, true
	}

	uu, ok := BuildPathFromIntronCoordinates(gr, v[1:len(v)-1])
	if !ok {
		return nil, false
	}

	for i := u1; i < uu[0]; i++ {
		vv = append(vv, i)
	}
	vv = append(vv, uu...)
	for i := uu[len(uu)-1] + 1; i <= u2; i++ {
		vv = append(vv, i)
	}
	return vv, true
}

// CheckContinuousVertices reports whether every consecutive pair in
// [x, y] is joined by an edge and shares a boundary position.
func CheckContinuousVertices(gr *SpliceGraph, x, y int) bool {
	if x >= y {
		return true
	}
	for i := x; i < y; i++ {
		if _, ok := gr.Edge(i, i+1); !ok {
			return false
		}
		if gr.VertexInfo(i).Rpos != gr.VertexInfo(i+1).Lpos {
			return false
		}
	}
	return true
}

// CheckValidPath reports whether every consecutive pair in vv is an
// edge of the graph.
func CheckValidPath(gr *SpliceGraph, vv []int) bool {
	n := gr.NumVertices() - 1
	for k := 0; k+1 < len(vv); k++ {
		if vv[k] < 0 || vv[k] > n || vv[k+1] < 0 || vv[k+1] > n {
			return false
		}
		if _, ok := gr.Edge(vv[k], vv[k+1]); !ok {
			return false
		}
	}
	return true
}

// MergeIntronChains merges the intron chains of two overlapping mates
// into their common supersequence. The merge fails when the chains are
// inconsistent, or when the overlap would split an intron.
func MergeIntronChains(x, y []int32) ([]int32, bool) {
	if len(x) >= 1 && len(y) >= 1 && x[0] > y[0] {
		return nil, false
	}
	xy, ok := utils.MergeTwoSorted(x, y)
	if !ok {
		return nil, false
	}
	if (len(x)+len(y)-len(xy))%2 != 0 {
		return nil, false
	}
	return xy, true
}

// ConsistentIntronChains reports whether two intron chains can be
// merged.
func ConsistentIntronChains(x, y []int32) bool {
	_, ok := MergeIntronChains(x, y)
	return ok
}

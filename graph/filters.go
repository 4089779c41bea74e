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

// Whitelist-driven edge filters. The whitelists carry positions (or
// junction pairs) that earned support across samples; sub-threshold
// edges survive only when whitelisted.

import (
	"github.com/Shao-Group/meta-scallop/internal"
	"github.com/willf/bitset"
)

// PositionSet is a set of splice or boundary positions.
type PositionSet map[int32]bool

// PositionPair is a (left, right) junction coordinate pair.
type PositionPair struct {
	P1, P2 int32
}

// PairSet is a set of junction coordinate pairs.
type PairSet map[PositionPair]bool

// KeepSurvivingJunctionEdges keeps edges weighing at least surviving
// or matching a whitelisted junction pair, augments the kept set with
// the spanning-cover rule, and removes the rest.
func KeepSurvivingJunctionEdges(gr *SpliceGraph, js PairSet, surviving float64) bool {
	se := make(map[*Edge]bool)
	sv1 := bitset.New(uint(gr.NumVertices()))
	sv2 := bitset.New(uint(gr.NumVertices()))

	for _, e := range gr.Edges() {
		p1 := gr.VertexInfo(e.Source()).Rpos
		p2 := gr.VertexInfo(e.Target()).Lpos
		if e.Weight < surviving && !js[PositionPair{p1, p2}] {
			continue
		}
		se[e] = true
		sv1.Set(uint(e.Target()))
		sv2.Set(uint(e.Source()))
	}

	augmentSurvivingEdges(gr, se, sv1, sv2)
	return removeNonSurvivingEdges(gr, se)
}

// KeepSurvivingEdgesWhitelist keeps edges weighing at least surviving,
// or whose positions are whitelisted: sentinel edges by their boundary
// position (sb, tb), adjacency edges by their shared position (aj),
// and crossing edges by both junction endpoints (js). The kept set is
// augmented with the spanning-cover rule before the rest is removed.
func KeepSurvivingEdgesWhitelist(gr *SpliceGraph, js, aj, sb, tb PositionSet, surviving float64) bool {
	n := gr.NumVertices() - 1
	se := make(map[*Edge]bool)
	sv1 := bitset.New(uint(gr.NumVertices()))
	sv2 := bitset.New(uint(gr.NumVertices()))

	for _, e := range gr.Edges() {
		s, t := e.Source(), e.Target()
		p1 := gr.VertexInfo(s).Rpos
		p2 := gr.VertexInfo(t).Lpos

		b := false
		switch {
		case e.Weight >= surviving:
			b = true
		case s == 0 && sb[p2]:
			b = true
		case t == n && tb[p1]:
			b = true
		case p1 == p2 && aj[p1]:
			b = true
		case p1 < p2 && js[p1] && js[p2]:
			b = true
		}
		if !b {
			continue
		}

		se[e] = true
		sv1.Set(uint(t))
		sv2.Set(uint(s))
	}

	augmentSurvivingEdges(gr, se, sv1, sv2)
	return removeNonSurvivingEdges(gr, se)
}

// FilterStartBoundaries removes sub-threshold source edges whose
// target boundary position is not whitelisted, then refines.
func FilterStartBoundaries(gr *SpliceGraph, js PositionSet, surviving float64) {
	z := gr.VertexInfo(0).Lpos
	internal.Assert(z == gr.VertexInfo(0).Rpos, "source sentinel is not zero-width")

	var doomed []*Edge
	for _, e := range gr.OutEdges(0) {
		if e.Weight >= surviving {
			continue
		}
		p := gr.VertexInfo(e.Target()).Lpos
		if p == z {
			continue
		}
		if js[p] {
			continue
		}
		doomed = append(doomed, e)
	}
	for _, e := range doomed {
		gr.RemoveEdge(e)
	}
	Refine(gr)
}

// FilterEndBoundaries removes sub-threshold sink edges whose source
// boundary position is not whitelisted, then refines.
func FilterEndBoundaries(gr *SpliceGraph, js PositionSet, surviving float64) {
	n := gr.NumVertices() - 1
	z := gr.VertexInfo(n).Lpos
	internal.Assert(z == gr.VertexInfo(n).Rpos, "sink sentinel is not zero-width")

	var doomed []*Edge
	for _, e := range gr.InEdges(n) {
		if e.Weight >= surviving {
			continue
		}
		p := gr.VertexInfo(e.Source()).Rpos
		if p == z {
			continue
		}
		if js[p] {
			continue
		}
		doomed = append(doomed, e)
	}
	for _, e := range doomed {
		gr.RemoveEdge(e)
	}
	Refine(gr)
}

// FilterJunctions removes sub-threshold crossing edges unless both
// junction endpoints are whitelisted, then refines.
func FilterJunctions(gr *SpliceGraph, js PositionSet, surviving float64) {
	var doomed []*Edge
	for _, e := range gr.Edges() {
		p1 := gr.VertexInfo(e.Source()).Rpos
		p2 := gr.VertexInfo(e.Target()).Lpos
		if p1 >= p2 {
			continue
		}
		if e.Weight >= surviving {
			continue
		}
		if js[p1] && js[p2] {
			continue
		}
		doomed = append(doomed, e)
	}
	for _, e := range doomed {
		gr.RemoveEdge(e)
	}
	Refine(gr)
}

// FilterGraph removes every edge that neither meets the surviving
// threshold nor is whitelisted by position, then refines. Unlike the
// surviving-edge keepers this filter applies no spanning-cover
// augmentation.
func FilterGraph(gr *SpliceGraph, js, aj, sb, tb PositionSet, surviving float64) {
	n := gr.NumVertices() - 1
	var doomed []*Edge
	for _, e := range gr.Edges() {
		s, t := e.Source(), e.Target()
		p1 := gr.VertexInfo(s).Rpos
		p2 := gr.VertexInfo(t).Lpos

		b := false
		switch {
		case e.Weight >= surviving:
			b = true
		case s == 0 && sb[p2]:
			b = true
		case t == n && tb[p1]:
			b = true
		case p1 == p2 && aj[p1]:
			b = true
		case p1 < p2 && js[p1] && js[p2]:
			b = true
		}
		if b {
			continue
		}
		doomed = append(doomed, e)
	}
	for _, e := range doomed {
		gr.RemoveEdge(e)
	}
	Refine(gr)
}

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

import "testing"

func TestGroupStartBoundaries(t *testing.T) {
	gr := NewSpliceGraph()
	for i := 0; i < 5; i++ {
		gr.AddVertex()
	}
	gr.SetVertexInfo(0, VertexInfo{Lpos: 1000, Rpos: 1000})
	gr.SetVertexInfo(1, VertexInfo{Lpos: 1000, Rpos: 1005, Length: 5})
	gr.SetVertexInfo(2, VertexInfo{Lpos: 1005, Rpos: 1020, Length: 15})
	gr.SetVertexInfo(3, VertexInfo{Lpos: 1020, Rpos: 1100, Length: 80})
	gr.SetVertexInfo(4, VertexInfo{Lpos: 1100, Rpos: 1100})
	gr.SetVertexWeight(1, 2)
	gr.SetVertexWeight(2, 2)
	gr.SetVertexWeight(3, 2)

	e01 := gr.AddEdge(0, 1)
	e01.Weight = 10
	e01.Info = EdgeInfo{Weight: 10, Count: 1}
	e02 := gr.AddEdge(0, 2)
	e02.Weight = 5
	e02.Info = EdgeInfo{Weight: 5, Count: 2}
	e03 := gr.AddEdge(0, 3)
	e03.Weight = 7
	e12 := gr.AddEdge(1, 2)
	e12.Weight = 3
	e23 := gr.AddEdge(2, 3)
	e23.Weight = 3
	e34 := gr.AddEdge(3, 4)
	e34.Weight = 9
	gr.BuildVertexIndex()

	smap := GroupStartBoundaries(gr, 10)

	if len(smap) != 1 || smap[1005] != 1000 {
		t.Errorf("smap = %v, want {1005:1000}", smap)
	}
	if _, ok := gr.Edge(0, 2); ok {
		t.Error("folded start boundary edge survived")
	}
	if e, ok := gr.Edge(0, 3); !ok || e.Weight != 7 {
		t.Error("distant start boundary edge was folded")
	}
	if e, ok := gr.Edge(0, 1); !ok || e.Weight != 15 {
		t.Error("group leader edge did not absorb the folded weight")
	}
	if e01.Info.Count != 3 || e01.Info.Weight != 15 {
		t.Error("group leader edge info did not absorb the folded counts")
	}
	if e12.Weight != 8 {
		t.Error("intermediate adjacency edge did not absorb the folded weight")
	}
	if gr.VertexWeight(1) != 7 {
		t.Error("intermediate vertex did not absorb the folded weight")
	}
}

func TestGroupEndBoundaries(t *testing.T) {
	gr := NewSpliceGraph()
	for i := 0; i < 4; i++ {
		gr.AddVertex()
	}
	gr.SetVertexInfo(0, VertexInfo{Lpos: 900, Rpos: 900})
	gr.SetVertexInfo(1, VertexInfo{Lpos: 900, Rpos: 1000, Length: 100})
	gr.SetVertexInfo(2, VertexInfo{Lpos: 1000, Rpos: 1005, Length: 5})
	gr.SetVertexInfo(3, VertexInfo{Lpos: 1005, Rpos: 1005})
	gr.SetVertexWeight(1, 4)
	gr.SetVertexWeight(2, 4)

	e01 := gr.AddEdge(0, 1)
	e01.Weight = 9
	e12 := gr.AddEdge(1, 2)
	e12.Weight = 3
	e13 := gr.AddEdge(1, 3)
	e13.Weight = 5
	e23 := gr.AddEdge(2, 3)
	e23.Weight = 10
	gr.BuildVertexIndex()

	tmap := GroupEndBoundaries(gr, 10)

	if len(tmap) != 1 || tmap[1000] != 1005 {
		t.Errorf("tmap = %v, want {1000:1005}", tmap)
	}
	if _, ok := gr.Edge(1, 3); ok {
		t.Error("folded end boundary edge survived")
	}
	if e, ok := gr.Edge(2, 3); !ok || e.Weight != 15 {
		t.Error("group leader edge did not absorb the folded weight")
	}
	if e12.Weight != 8 {
		t.Error("intermediate adjacency edge did not absorb the folded weight")
	}
	if gr.VertexWeight(2) != 9 {
		t.Error("intermediate vertex did not absorb the folded weight")
	}
}

func TestGroupStartBoundariesRespectsDistance(t *testing.T) {
	gr := NewSpliceGraph()
	for i := 0; i < 4; i++ {
		gr.AddVertex()
	}
	gr.SetVertexInfo(0, VertexInfo{Lpos: 0, Rpos: 0})
	gr.SetVertexInfo(1, VertexInfo{Lpos: 0, Rpos: 100, Length: 100})
	gr.SetVertexInfo(2, VertexInfo{Lpos: 100, Rpos: 200, Length: 100})
	gr.SetVertexInfo(3, VertexInfo{Lpos: 200, Rpos: 200})
	gr.AddEdge(0, 1)
	gr.AddEdge(0, 2)
	gr.AddEdge(1, 2)
	gr.AddEdge(2, 3)

	smap := GroupStartBoundaries(gr, 10)
	if len(smap) != 0 {
		t.Error("boundaries beyond the distance limit were grouped")
	}
	if _, ok := gr.Edge(0, 2); !ok {
		t.Error("ungrouped boundary edge was removed")
	}
}

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

package cmd

import (
	"github.com/Shao-Group/meta-scallop/bridge"
	"github.com/Shao-Group/meta-scallop/graph"
	"github.com/Shao-Group/meta-scallop/meta"
)

// LoadBundles produces the per-sample bundles the combine command
// operates on. An alignment ingestion backend replaces it; the default
// synthesises a small in-memory demonstration locus.
var LoadBundles = LoadDemoBundles

// LoadDemoBundles synthesises two sample bundles over one two-exon
// locus with a shared junction: one fragment cluster spans the
// junction and one has overlapping mates. It exercises the full
// revise, bridge, and combine pipeline without any alignment input.
func LoadDemoBundles(params *graph.Parameters) ([]*meta.Bundle, error) {
	bundles := []*meta.Bundle{
		demoBundle([4]float64{40, 30, 30, 35}, 3),
		demoBundle([4]float64{25, 20, 20, 25}, 2),
	}
	return bundles, nil
}

// demoBundle builds one sample over the demonstration locus
// chr1:100-600: exonic regions [100,200), [200,300), [400,500),
// [500,600), a junction over intron (300,400), and two fragment
// clusters.
func demoBundle(vw [4]float64, count int) *meta.Bundle {
	gr := graph.NewSpliceGraph()
	gr.Chrm = "chr1"
	gr.Strand = '+'
	for i := 0; i < 6; i++ {
		gr.AddVertex()
	}
	gr.SetVertexInfo(0, graph.VertexInfo{Lpos: 100, Rpos: 100})
	gr.SetVertexInfo(1, graph.VertexInfo{Lpos: 100, Rpos: 200, Length: 100, Stddev: 1})
	gr.SetVertexInfo(2, graph.VertexInfo{Lpos: 200, Rpos: 300, Length: 100, Stddev: 1})
	gr.SetVertexInfo(3, graph.VertexInfo{Lpos: 400, Rpos: 500, Length: 100, Stddev: 1})
	gr.SetVertexInfo(4, graph.VertexInfo{Lpos: 500, Rpos: 600, Length: 100, Stddev: 1})
	gr.SetVertexInfo(5, graph.VertexInfo{Lpos: 600, Rpos: 600})
	for i, w := range vw {
		gr.SetVertexWeight(i+1, w)
	}
	for _, x := range []struct {
		s, t int
		w    float64
	}{
		{0, 1, 25}, {1, 2, 28}, {2, 3, 20}, {3, 4, 28}, {4, 5, 30},
	} {
		e := gr.AddEdge(x.s, x.t)
		e.Weight = x.w
		e.Info = graph.EdgeInfo{Weight: x.w, Count: 1}
	}
	gr.BuildVertexIndex()

	return &meta.Bundle{
		Gr: gr,
		Clusters: []bridge.PereadsCluster{
			{
				// spans the junction; bridging must thread [1 2 3]
				Bounds: [4]int32{120, 180, 420, 480},
				Extend: [4]int32{110, 190, 410, 490},
				Count:  count,
			},
			{
				// overlapping mates inside [200,300)
				Bounds: [4]int32{210, 260, 240, 290},
				Extend: [4]int32{205, 265, 235, 295},
				Count:  1,
			},
		},
		LengthLow:  50,
		LengthHigh: 500,
	}
}

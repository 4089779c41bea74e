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

// Package bridge connects the two mates of paired-end fragments with
// paths through a revised splice graph.
package bridge

// PereadsCluster is a cluster of identically-aligned paired-end
// fragments. The observed mates cover [Bounds[0], Bounds[1]] and
// [Bounds[2], Bounds[3]]; the gap in between is what bridging fills.
// Extend carries the coordinates widened by soft-clip evidence, and
// Chain1/Chain2 the intron chains of the two mates.
type PereadsCluster struct {
	Bounds [4]int32
	Extend [4]int32
	Chain1 []int32
	Chain2 []int32
	Count  int
}

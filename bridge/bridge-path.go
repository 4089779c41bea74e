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

// Bridging outcome types stored in BridgePath.Type.
const (
	Unbridged       = -1
	OverlappedMates = 1
	GraphBridged    = 2
)

// OverlapScore is the score assigned when two mates overlap and their
// chains merge directly, with no graph path in between.
const OverlapScore = 10

// BridgePath is one candidate (or chosen) bridge. V is the vertex
// path through the graph, Chain its intron chain, Whole the full
// intron chain of the fragment including both mates, and Stack the
// bottleneck vector that ranked the path.
type BridgePath struct {
	Type  int
	Score float64
	V     []int
	Chain []int32
	Whole []int32
	Stack []int
}

// Pier holds the candidate bridges for one (source, sink) vertex pair
// shared by one or more fragments.
type Pier struct {
	Bs, Bt  int
	Bridges []BridgePath
}

// compareStacks ranks bottleneck vectors: lexicographically larger
// wins, so paths whose worst edges are heavier sort first.
func compareStacks(x, y []int) int {
	for i := 0; i < len(x) && i < len(y); i++ {
		if x[i] > y[i] {
			return -1
		}
		if x[i] < y[i] {
			return 1
		}
	}
	return 0
}

func compareBridgePathStack(p1, p2 *BridgePath) bool {
	return compareStacks(p1.Stack, p2.Stack) < 0
}

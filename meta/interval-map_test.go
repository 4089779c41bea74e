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

package meta

import "testing"

func segmentsEqual(x, y []Segment) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func TestSplitIntervalMap(t *testing.T) {
	var m SplitIntervalMap
	if m.Segments() != nil {
		t.Error("empty map failed")
	}

	m.Add(0, 10, 5)
	m.Add(5, 15, 3)
	want := []Segment{{0, 5, 5}, {5, 10, 8}, {10, 15, 3}}
	if !segmentsEqual(m.Segments(), want) {
		t.Errorf("segments = %v, want %v", m.Segments(), want)
	}
}

func TestSplitIntervalMapGap(t *testing.T) {
	var m SplitIntervalMap
	m.Add(0, 10, 2)
	m.Add(20, 30, 4)
	want := []Segment{{0, 10, 2}, {20, 30, 4}}
	if !segmentsEqual(m.Segments(), want) {
		t.Errorf("segments = %v, want %v", m.Segments(), want)
	}
}

func TestSplitIntervalMapIdentical(t *testing.T) {
	var m SplitIntervalMap
	m.Add(100, 200, 3)
	m.Add(100, 200, 7)
	want := []Segment{{100, 200, 10}}
	if !segmentsEqual(m.Segments(), want) {
		t.Errorf("segments = %v, want %v", m.Segments(), want)
	}
}

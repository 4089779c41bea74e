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

package internal

import "log"

// Assert panics with the given message when the condition does not
// hold. Assertion failures indicate structural bugs, not data errors.
func Assert(condition bool, message string) {
	if !condition {
		log.Panic(message)
	}
}

// Panicf is log.Panicf; it marks unreachable states and violated
// graph invariants.
func Panicf(format string, args ...interface{}) {
	log.Panicf(format, args...)
}

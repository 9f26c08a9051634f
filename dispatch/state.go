/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package dispatch

import "fmt"

// State is the lifecycle stage of a synthesized Type. States only move
// forward.
type State int32

const (
	// Requested is the state of a freshly allocated Type.
	Requested State = iota
	// MembersEnumerated is reached once the interface members are declared.
	MembersEnumerated
	// PerMemberResolved is reached once every member has a resolution record.
	PerMemberResolved
	// Emitted is reached once every member has a forwarder.
	Emitted
	// Finalized is reached once the dispatch table and properties are built.
	Finalized
	// Cached is reached once the type is published in a cache.
	Cached
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Requested:
		return "Requested"
	case MembersEnumerated:
		return "MembersEnumerated"
	case PerMemberResolved:
		return "PerMemberResolved"
	case Emitted:
		return "Emitted"
	case Finalized:
		return "Finalized"
	case Cached:
		return "Cached"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

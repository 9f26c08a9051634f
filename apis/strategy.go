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

package apis

import (
	"reflect"

	"github.com/samber/do"
)

// Strategy is a pluggable resolution step. A Resolver chains multiple
// strategies in order (e.g., Static -> Backing -> Field).
type Strategy interface {
	// TryResolve attempts to service member m.
	// It returns (res, true, nil) if handled; (_, false, nil) to fall through;
	// and a non-nil error to abort synthesis with a composition error.
	TryResolve(m Member, rc *ResolveContext) (res Resolution, handled bool, err error)
}

// ResolveContext is the per-member input shared by all strategies of a chain.
type ResolveContext struct {
	// Request is the mixin being synthesized.
	Request Request
	// Config is the active configuration.
	Config Config
	// Matcher performs structural signature checks.
	Matcher Matcher
	// Target is the effective lookup name for the member.
	Target string
	// Property is the effective property base name for getters and setters.
	Property string
	// Override is the member's override, or nil.
	Override *Override
	// Static is the static collaborator designated by the override, if it could be obtained.
	Static reflect.Value
	// Lookup is the synthesizer's lookup handle (may be nil).
	Lookup *do.Injector
	// Extensions are the registered extension functions (may be nil).
	Extensions ExtensionSet
}

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

package strategy

import (
	"dirpx.dev/mixin/apis"
)

// NewUnimplementedStrategy creates the terminal apis.Strategy: it always
// handles the member and leaves it unresolved, so that invoking it fails
// with apis.NotImplementedError while synthesis of the type continues.
func NewUnimplementedStrategy() apis.Strategy {
	return unimplementedStrategy{}
}

type unimplementedStrategy struct{}

var _ apis.Strategy = (*unimplementedStrategy)(nil)

// TryResolve implements apis.Strategy.
func (unimplementedStrategy) TryResolve(m apis.Member, rc *apis.ResolveContext) (apis.Resolution, bool, error) {
	return resolution(m, rc, apis.Unresolved), true, nil
}

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

package builder

import (
	"fmt"

	"github.com/samber/do"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/dispatch"
	"dirpx.dev/mixin/emitter"
	uref "dirpx.dev/mixin/utils/reflect"
)

// TypeBuilder drives a dispatch.Type through its lifecycle: declare the
// members, resolve each of them, emit the forwarders and finalize.
type TypeBuilder struct {
	emitter apis.Emitter
}

// NewTypeBuilder constructs a TypeBuilder. A nil emitter selects emitter.New().
func NewTypeBuilder(e apis.Emitter) *TypeBuilder {
	if e == nil {
		e = emitter.New()
	}
	return &TypeBuilder{emitter: e}
}

// Build synthesizes the type for req. The returned type is Finalized; a
// cache marks it Cached once published.
func (b *TypeBuilder) Build(req apis.Request, res apis.Resolver, cfg apis.Config, lookup *do.Injector) (*dispatch.Type, error) {
	t := dispatch.NewType(req, uref.DisplayName(req.Interface, req.Backings), uref.Key(req.Interface, req.Backings))

	members := res.Members(req.Interface)
	if err := t.Declare(members); err != nil {
		return nil, err
	}

	rs, err := res.Resolve(req, members, cfg, lookup)
	if err != nil {
		return nil, err
	}
	if err := t.Resolve(rs); err != nil {
		return nil, err
	}

	fws := make([]apis.Forwarder, len(rs))
	for i, r := range rs {
		fw, err := b.emitter.Emit(r, cfg)
		if err != nil {
			return nil, fmt.Errorf("mixin(builder): emit %s: %w", r.Member.Name, err)
		}
		fws[i] = fw
	}
	if err := t.Bind(fws); err != nil {
		return nil, err
	}

	if err := t.Finalize(); err != nil {
		return nil, err
	}
	return t, nil
}

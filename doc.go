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

// Package mixin synthesizes implementations of a Go interface from an
// ordered list of backing instances.
//
// Given an interface and instances of unrelated types, mixin produces a
// value implementing the interface in which every method is serviced by
// the first backing instance offering a compatible method. Getters and
// setters (X/GetX and SetX) fall back to exported struct fields. Methods
// nobody services still exist and fail with *apis.NotImplementedError
// when called.
//
//	type Person interface {
//		Name() string
//		Address() string
//		PhoneNo() string
//		SetPhoneNo(string)
//	}
//
//	p, err := mixin.CreateInstance[Person](&Contact{Name: "Ada"}, &Phone{})
//
// # Design
//
// Go cannot declare methods at run time, so synthesis is split in two:
//
//   - A dispatch table (dispatch.Type) is synthesized at run time per
//     (interface, backing types) pair. It records, per interface member,
//     which strategy serviced it and a forwarder performing the call with
//     argument and result coercion.
//
//   - A shim, generated at build time by cmd/mixingen, implements the
//     interface by forwarding every method to the dispatch table. Shims
//     register themselves with dispatch.RegisterShim.
//
// Synthesized tables are cached process-wide and built at most once per
// key, also under concurrent first use.
//
// # Global state
//
// The package holds a read-mostly snapshot of:
//
//   - Config: field fallback scope, open member policy, recursion depth,
//     extension search.
//   - Registry: per-interface member overrides (Annotate, AnnotateYAML).
//   - Resolver: the ordered strategy chain.
//   - Cache: synthesized dispatch tables.
//   - Builder: a factory for the layers above, fed with an opaque
//     extension payload (SetExt). The default payload is an
//     apis.ExtensionSet that Extend adds to.
//   - Lookup: an optional samber/do injector. Service overrides resolve
//     collaborators from it and it may provide an alternate
//     apis.Synthesizer.
//
// Reads load the snapshot atomically and take no locks. Writers take a
// short build mutex, assemble a new snapshot and publish it. Every writer
// drops the type cache. SetRegistry and SetResolver pin their layer so it
// survives SetConfig and SetBuilder until it is unpinned.
//
// # Member resolution
//
// Members are resolved in this order, first match wins:
//
//  1. Static or service override of the member.
//  2. Open members (signature uses any): first backing only, by name and
//     arity, when OpenPolicy is OpenFirstBacking.
//  3. Backing methods, in backing order, by name, compatible parameters
//     and compatible results.
//  4. Extension functions taking the backing instance first.
//  5. Exported struct fields for getters and setters.
//  6. Unimplemented.
//
// A candidate whose parameters match but whose results do not is a
// composition error: synthesis fails with *apis.CompositionError.
package mixin

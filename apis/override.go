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

// Override redirects the resolution of one interface member. It is the Go
// rendering of a declarative annotation: the interface author attaches a set
// of overrides to the interface type through a Registry.
type Override struct {
	// Target replaces the lookup name. For getters and setters only the
	// property base is replaced; the Get/Set prefix is kept.
	Target string `yaml:"target"`
	// Static is a collaborator value whose exported methods are searched
	// instead of the backing types.
	Static any `yaml:"-"`
	// Service names a collaborator obtained from the lookup handle. It is
	// looked up in the synthesizer's injector at synthesis time and in the
	// instance's injector at call time.
	Service string `yaml:"service"`
}

// Redirects reports whether the override points at a static collaborator.
func (o Override) Redirects() bool {
	return o.Static != nil || o.Service != ""
}

// Overrides maps interface member names to overrides.
type Overrides map[string]Override

// Clone returns a shallow copy of o (nil stays nil).
func (o Overrides) Clone() Overrides {
	if o == nil {
		return nil
	}
	c := make(Overrides, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

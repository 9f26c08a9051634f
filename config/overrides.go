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

package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"dirpx.dev/mixin/apis"
)

// ErrDuplicateMember is returned when an overrides document names a member twice.
var ErrDuplicateMember = errors.New("mixin(config): duplicate member override")

// overridesValidate is the validator instance for override documents.
var overridesValidate = validator.New()

// OverridesFile is the YAML shape of a declarative overrides document:
//
//	members:
//	  - member: Greeting
//	    target: Hello
//	  - member: Now
//	    service: clock
//
// Static collaborator values cannot be expressed in YAML; use service to
// name a collaborator provided through the lookup handle instead.
type OverridesFile struct {
	Members []MemberOverride `yaml:"members" validate:"dive"`
}

// MemberOverride is one entry of an OverridesFile.
type MemberOverride struct {
	Member  string `yaml:"member" validate:"required"`
	Target  string `yaml:"target" validate:"required_without=Service"`
	Service string `yaml:"service"`
}

// ParseOverrides decodes and validates a YAML overrides document.
func ParseOverrides(data []byte) (apis.Overrides, error) {
	var f OverridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("mixin(config): decode overrides: %w", err)
	}
	return f.Overrides()
}

// Overrides validates f and converts it to apis.Overrides.
func (f OverridesFile) Overrides() (apis.Overrides, error) {
	if err := overridesValidate.Struct(f); err != nil {
		return nil, fmt.Errorf("mixin(config): invalid overrides: %w", err)
	}
	ovs := make(apis.Overrides, len(f.Members))
	for _, m := range f.Members {
		if _, dup := ovs[m.Member]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, m.Member)
		}
		ovs[m.Member] = apis.Override{Target: m.Target, Service: m.Service}
	}
	return ovs, nil
}

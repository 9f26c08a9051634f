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
	"fmt"

	"gopkg.in/yaml.v3"

	"dirpx.dev/mixin/apis"
)

const (
	// DefaultFieldScope represents the default for FieldScope.
	// Every backing type is searched for fallback fields, in order.
	DefaultFieldScope = apis.FieldScopeAny
	// DefaultOpenPolicy represents the default for OpenPolicy.
	DefaultOpenPolicy = apis.OpenFirstBacking
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxDepth = 8
	// DefaultExtensions represents the default for Extensions.
	DefaultExtensions = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		FieldScope: DefaultFieldScope,
		OpenPolicy: DefaultOpenPolicy,
		MaxDepth:   DefaultMaxDepth,
		Extensions: DefaultExtensions,
	}
}

// ParseConfig decodes a YAML document on top of DefaultConfig.
// Keys that are absent keep their default value.
//
//	fieldScope: first
//	openPolicy: structural
//	maxDepth: 4
//	extensions: false
func ParseConfig(data []byte) (apis.Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return apis.Config{}, fmt.Errorf("mixin(config): decode config: %w", err)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg, nil
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithFieldScope sets the FieldScope option.
func WithFieldScope(scope apis.FieldScope) Option {
	return func(c *apis.Config) {
		c.FieldScope = scope
	}
}

// WithOpenPolicy sets the OpenPolicy option.
func WithOpenPolicy(policy apis.OpenPolicy) Option {
	return func(c *apis.Config) {
		c.OpenPolicy = policy
	}
}

// WithMaxDepth sets the MaxDepth option.
// A negative value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}

// WithExtensions sets the Extensions option.
func WithExtensions(enabled bool) Option {
	return func(c *apis.Config) {
		c.Extensions = enabled
	}
}

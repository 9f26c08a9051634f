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

// Package synth exposes the two core operations: obtaining the synthesized
// type for an interface over backing types, and instantiating it over
// backing instances.
package synth

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/do"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/builder"
	"dirpx.dev/mixin/cache"
)

var (
	// synthesisTotal counts type syntheses by result
	synthesisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mixin_synthesis_total",
		Help: "Total mixin type syntheses by result",
	}, []string{"result"})

	// synthesisDuration tracks type synthesis latency
	synthesisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mixin_synthesis_duration_seconds",
		Help:    "Mixin type synthesis duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10us to ~80ms
	})
)

// Synthesizer implements apis.Synthesizer over a resolver, a type cache and a
// type builder.
type Synthesizer struct {
	cfg     apis.Config
	res     apis.Resolver
	cache   apis.Cache
	builder *builder.TypeBuilder
	lookup  *do.Injector
}

// Compile-time check that Synthesizer implements apis.Synthesizer.
var _ apis.Synthesizer = (*Synthesizer)(nil)

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithCache makes the synthesizer share c. Synthesizers sharing a cache find
// each other's types.
func WithCache(c apis.Cache) Option {
	return func(s *Synthesizer) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithEmitter selects the emitter used to build forwarders.
func WithEmitter(e apis.Emitter) Option {
	return func(s *Synthesizer) {
		s.builder = builder.NewTypeBuilder(e)
	}
}

// WithLookup sets the synthesizer's lookup handle, used to resolve service
// overrides at synthesis time.
func WithLookup(i *do.Injector) Option {
	return func(s *Synthesizer) {
		s.lookup = i
	}
}

// New constructs a Synthesizer. Without WithCache it owns a private cache.
func New(cfg apis.Config, res apis.Resolver, opts ...Option) *Synthesizer {
	s := &Synthesizer{cfg: cfg, res: res}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.New()
	}
	if s.builder == nil {
		s.builder = builder.NewTypeBuilder(nil)
	}
	return s
}

// Config returns the synthesizer's configuration.
func (s *Synthesizer) Config() apis.Config { return s.cfg }

// Cache returns the synthesizer's type cache.
func (s *Synthesizer) Cache() apis.Cache { return s.cache }

// GetOrCreateType implements apis.Synthesizer.
func (s *Synthesizer) GetOrCreateType(iface reflect.Type, backings ...reflect.Type) (apis.MixinType, error) {
	// Validate inputs early.
	if iface == nil {
		return nil, apis.ErrNilInterface
	}
	if iface.Kind() != reflect.Interface {
		return nil, apis.ErrNotInterface
	}
	for _, b := range backings {
		if b == nil {
			return nil, apis.ErrNilBacking
		}
	}

	req := apis.Request{Interface: iface, Backings: append([]reflect.Type(nil), backings...)}
	return s.cache.GetOrCreate(req, func() (apis.MixinType, error) {
		return s.synthesize(req)
	})
}

// synthesize builds the type for req; called at most once per key by the cache.
func (s *Synthesizer) synthesize(req apis.Request) (apis.MixinType, error) {
	start := time.Now()
	t, err := s.builder.Build(req, s.res, s.cfg, s.lookup)
	synthesisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		synthesisTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	synthesisTotal.WithLabelValues("ok").Inc()

	slog.Debug("Mixin type synthesized",
		slog.String("type", t.Name()),
		slog.Int("members", len(t.Members())),
		slog.Int("unresolved", len(t.Unresolved())),
		slog.Duration("duration", time.Since(start)))
	return t, nil
}

// CreateInstance implements apis.Synthesizer.
func (s *Synthesizer) CreateInstance(iface reflect.Type, instances []any, lookup *do.Injector) (apis.Object, error) {
	if iface == nil {
		return nil, apis.ErrNilInterface
	}
	if iface.Kind() != reflect.Interface {
		return nil, apis.ErrNotInterface
	}
	if len(instances) == 0 {
		return nil, nil
	}
	backings := make([]reflect.Type, len(instances))
	for i, inst := range instances {
		if inst == nil {
			return nil, apis.ErrNilBacking
		}
		backings[i] = reflect.TypeOf(inst)
	}

	t, err := s.GetOrCreateType(iface, backings...)
	if err != nil {
		return nil, err
	}
	return t.New(instances, lookup), nil
}

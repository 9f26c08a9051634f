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

package resolver

import (
	"log/slog"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/do"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/matcher"
	"dirpx.dev/mixin/strategy"
	uref "dirpx.dev/mixin/utils/reflect"
)

var (
	// membersResolved counts resolved members by the strategy that serviced them
	membersResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mixin_members_resolved_total",
		Help: "Total interface members resolved by strategy",
	}, []string{"strategy"})
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Overrides are read from reg; ext (may be nil) is handed to the strategies
// through the resolve context. A nil matcher is built from the Config of
// each Resolve call. Nil strategies are ignored. The returned
// resolver is safe for concurrent use provided strategies themselves are
// safe for concurrent TryResolve calls.
func New(reg apis.Registry, m apis.Matcher, ext apis.ExtensionSet, strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{reg: reg, matcher: m, ext: ext, strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	reg     apis.Registry
	matcher apis.Matcher
	ext     apis.ExtensionSet
	strats  []apis.Strategy
}

// Members returns every method of iface in method-index order. Embedded
// interfaces are already flattened by reflect.
func (r chain) Members(iface reflect.Type) []apis.Member {
	if iface == nil || iface.Kind() != reflect.Interface {
		return nil
	}
	members := make([]apis.Member, 0, iface.NumMethod())
	for i := 0; i < iface.NumMethod(); i++ {
		m := iface.Method(i)
		if !m.IsExported() {
			continue
		}
		mem := apis.Member{
			Interface: iface,
			Name:      m.Name,
			Index:     i,
			Type:      m.Type,
			Open:      uref.SignatureIsOpen(m.Type),
		}
		switch kind, prop := uref.Classify(m.Name, m.Type); kind {
		case uref.Getter:
			mem.Kind, mem.Property = apis.MemberGetter, prop
		case uref.Setter:
			mem.Kind, mem.Property = apis.MemberSetter, prop
		}
		members = append(members, mem)
	}
	return members
}

// Resolve runs strategies in order for every member until one handles it.
// A strategy error aborts the whole resolution.
func (r chain) Resolve(req apis.Request, members []apis.Member, cfg apis.Config, lookup *do.Injector) ([]apis.Resolution, error) {
	var ovs apis.Overrides
	if r.reg != nil {
		ovs, _ = r.reg.Lookup(req.Interface)
	}

	out := make([]apis.Resolution, 0, len(members))
	for _, m := range members {
		rc := r.context(req, m, ovs, cfg, lookup)
		res, err := r.resolve(m, rc)
		if err != nil {
			slog.Error("Mixin member composition failed",
				slog.String("interface", uref.QualifiedName(req.Interface)),
				slog.String("member", m.Name),
				slog.String("error", err.Error()))
			return nil, err
		}
		if res.Kind == apis.Unresolved {
			slog.Warn("Mixin member left unimplemented",
				slog.String("interface", uref.QualifiedName(req.Interface)),
				slog.String("member", m.Name),
				slog.String("target", rc.Target))
		}
		out = append(out, res)
	}

	// Count only after the whole type resolved.
	for _, res := range out {
		membersResolved.WithLabelValues(res.Kind.String()).Inc()
	}
	return out, nil
}

// resolve runs the chain for a single member.
func (r chain) resolve(m apis.Member, rc *apis.ResolveContext) (apis.Resolution, error) {
	for _, s := range r.strats {
		res, ok, err := s.TryResolve(m, rc)
		if err != nil {
			return apis.Resolution{}, err
		}
		if ok {
			return res, nil
		}
	}
	return apis.Resolution{Member: m, Kind: apis.Unresolved, Target: rc.Target, Index: -1}, nil
}

// context builds the per-member resolve context, applying the override's
// target. For getters and setters only the property base is replaced.
func (r chain) context(req apis.Request, m apis.Member, ovs apis.Overrides, cfg apis.Config, lookup *do.Injector) *apis.ResolveContext {
	mt := r.matcher
	if mt == nil {
		mt = matcher.New(cfg)
	}
	rc := &apis.ResolveContext{
		Request:    req,
		Config:     cfg,
		Matcher:    mt,
		Target:     m.Name,
		Property:   m.Property,
		Lookup:     lookup,
		Extensions: r.ext,
	}
	ov, ok := ovs[m.Name]
	if !ok {
		return rc
	}
	rc.Override = &ov
	if ov.Target != "" {
		if m.Kind == apis.MemberMethod {
			rc.Target = ov.Target
		} else {
			rc.Target = uref.Rebase(m.Name, m.Property, ov.Target)
			rc.Property = ov.Target
		}
	}
	if ov.Redirects() {
		rc.Static = strategy.Collaborator(rc.Override, lookup)
	}
	return rc
}

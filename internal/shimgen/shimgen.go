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

// Package shimgen renders dispatch shims for interfaces. A shim is a
// struct embedding *dispatch.Instance whose methods forward to
// Instance.MustCall, registered with dispatch.RegisterShim from init.
package shimgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/go/packages"
)

// DispatchPath is the import path of the dispatch package.
const DispatchPath = "dirpx.dev/mixin/dispatch"

var (
	// ErrNotFound is returned when a named type is missing from the package.
	ErrNotFound = errors.New("mixin(shimgen): type not found")
	// ErrNotInterface is returned when a named type is not an interface.
	ErrNotInterface = errors.New("mixin(shimgen): type is not an interface")
	// ErrUnsupported is returned for interfaces a shim cannot implement.
	ErrUnsupported = errors.New("mixin(shimgen): unsupported interface")
)

// Shim describes the shim of one interface.
type Shim struct {
	// Interface is the interface name.
	Interface string
	// Type is the shim struct name.
	Type string
	// Methods are the forwarded methods, sorted by name.
	Methods []Method
}

// Method is one forwarded method.
type Method struct {
	Name    string
	Params  []Param
	Results []string
}

// Param is one method parameter. Variadic parameters render as ...Elem.
type Param struct {
	Name     string
	Type     string
	Variadic bool
}

// Signature renders the parameter list.
func (m Method) Signature() string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		if p.Variadic {
			parts[i] = p.Name + " ..." + p.Type
		} else {
			parts[i] = p.Name + " " + p.Type
		}
	}
	return strings.Join(parts, ", ")
}

// Returns renders the result list.
func (m Method) Returns() string {
	switch len(m.Results) {
	case 0:
		return ""
	case 1:
		return " " + m.Results[0]
	default:
		return " (" + strings.Join(m.Results, ", ") + ")"
	}
}

// Args renders the MustCall arguments. Variadic values are passed as the slice.
func (m Method) Args() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(m.Name))
	for _, p := range m.Params {
		b.WriteString(", ")
		b.WriteString(p.Name)
	}
	return b.String()
}

// imports assigns package names to import paths for one output file.
type imports struct {
	self   *types.Package
	byPath map[string]string
	used   map[string]string
}

func newImports(self *types.Package) *imports {
	im := &imports{self: self, byPath: map[string]string{}, used: map[string]string{}}
	im.add(DispatchPath, "dispatch")
	return im
}

// add returns the local name of path, picking a free one on first use.
func (im *imports) add(path, name string) string {
	if n, ok := im.byPath[path]; ok {
		return n
	}
	local := name
	for i := 2; ; i++ {
		if _, taken := im.used[local]; !taken {
			break
		}
		local = name + strconv.Itoa(i)
	}
	im.byPath[path], im.used[local] = local, path
	return local
}

// qualifier implements types.Qualifier.
func (im *imports) qualifier(p *types.Package) string {
	if p == im.self {
		return ""
	}
	return im.add(p.Path(), p.Name())
}

// specs renders the import block entries, sorted by path.
func (im *imports) specs() []string {
	paths := make([]string, 0, len(im.byPath))
	for p := range im.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([]string, len(paths))
	for i, p := range paths {
		local := im.byPath[p]
		if local == filepath.Base(p) {
			out[i] = strconv.Quote(p)
		} else {
			out[i] = local + " " + strconv.Quote(p)
		}
	}
	return out
}

// describe builds the shim description of the interface named name in pkg.
// Type strings are qualified through im.
func describe(pkg *types.Package, name string, im *imports) (*Shim, error) {
	obj := pkg.Scope().Lookup(name)
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotFound, pkg.Path(), name)
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s is an alias", ErrUnsupported, pkg.Path(), name)
	}
	if named.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("%w: %s.%s is generic", ErrUnsupported, pkg.Path(), name)
	}
	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotInterface, pkg.Path(), name)
	}
	if !iface.IsMethodSet() {
		return nil, fmt.Errorf("%w: %s.%s is a constraint", ErrUnsupported, pkg.Path(), name)
	}

	s := &Shim{Interface: name, Type: shimName(name)}
	q := im.qualifier
	for i := 0; i < iface.NumMethods(); i++ {
		fn := iface.Method(i)
		if !fn.Exported() {
			return nil, fmt.Errorf("%w: %s.%s has unexported method %s", ErrUnsupported, pkg.Path(), name, fn.Name())
		}
		// Promoted from the embedded instance.
		if fn.Name() == "MixinObjects" {
			continue
		}
		sig := fn.Type().(*types.Signature)
		m := Method{Name: fn.Name()}
		for k := 0; k < sig.Params().Len(); k++ {
			p := Param{Name: "p" + strconv.Itoa(k), Type: types.TypeString(sig.Params().At(k).Type(), q)}
			if sig.Variadic() && k == sig.Params().Len()-1 {
				p.Variadic = true
				p.Type = types.TypeString(sig.Params().At(k).Type().(*types.Slice).Elem(), q)
			}
			m.Params = append(m.Params, p)
		}
		for k := 0; k < sig.Results().Len(); k++ {
			m.Results = append(m.Results, types.TypeString(sig.Results().At(k).Type(), q))
		}
		s.Methods = append(s.Methods, m)
	}
	return s, nil
}

// shimName returns the unexported shim type name for iface.
func shimName(iface string) string {
	r := []rune(iface)
	r[0] = unicode.ToLower(r[0])
	return string(r) + "MixinShim"
}

var fileTmpl = template.Must(template.New("shim").Parse(`// Code generated by mixingen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{range .Shims}}
// {{.Type}} implements {{.Interface}} over a synthesized mixin instance.
type {{.Type}} struct{ *dispatch.Instance }

func init() {
	dispatch.RegisterShim(func(i *dispatch.Instance) {{.Interface}} { return {{.Type}}{i} })
}
{{$shim := .Type}}
{{- range .Methods}}
func (s {{$shim}}) {{.Name}}({{.Signature}}){{.Returns}} {
{{- if .Results}}
	out := s.Instance.MustCall({{.Args}})
	return {{range $k, $r := .Results}}{{if $k}}, {{end}}dispatch.Out[{{$r}}](out, {{$k}}){{end}}
{{- else}}
	s.Instance.MustCall({{.Args}})
{{- end}}
}
{{end}}
{{- end}}`))

// Render renders the shims of the named interfaces of pkg into one
// gofmt'ed Go file.
func Render(pkg *types.Package, names ...string) ([]byte, error) {
	im := newImports(pkg)
	shims := make([]*Shim, 0, len(names))
	for _, n := range names {
		s, err := describe(pkg, n, im)
		if err != nil {
			return nil, err
		}
		shims = append(shims, s)
	}

	var buf bytes.Buffer
	err := fileTmpl.Execute(&buf, struct {
		Package string
		Imports []string
		Shims   []*Shim
	}{pkg.Name(), im.specs(), shims})
	if err != nil {
		return nil, fmt.Errorf("mixin(shimgen): render: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("mixin(shimgen): format: %w", err)
	}
	return src, nil
}

// Options configures Generate.
type Options struct {
	// Pattern is the go/packages pattern of the package declaring the interfaces.
	Pattern string
	// Types are the interface names.
	Types []string
	// Output is the output file. When empty, each interface is written to
	// <iface>_mixin.go in the package directory.
	Output string
	// Dir is the working directory for package loading.
	Dir string
}

// Load loads the package matched by pattern and returns its types and
// directory.
func Load(dir, pattern string) (*types.Package, string, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, "", fmt.Errorf("mixin(shimgen): loading packages: %w", err)
	}
	if len(pkgs) != 1 {
		return nil, "", fmt.Errorf("mixin(shimgen): pattern %q matched %d packages, want 1", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]string, len(pkg.Errors))
		for i, e := range pkg.Errors {
			errs[i] = e.Msg
		}
		return nil, "", fmt.Errorf("mixin(shimgen): package errors:\n  %s", strings.Join(errs, "\n  "))
	}
	if len(pkg.GoFiles) == 0 {
		return nil, "", fmt.Errorf("mixin(shimgen): package %s has no Go files", pkg.PkgPath)
	}
	return pkg.Types, filepath.Dir(pkg.GoFiles[0]), nil
}

// Generate loads the package and writes the shim files. It returns the
// paths written.
func Generate(opts Options) ([]string, error) {
	if len(opts.Types) == 0 {
		return nil, fmt.Errorf("mixin(shimgen): no interface types given")
	}
	pkg, dir, err := Load(opts.Dir, opts.Pattern)
	if err != nil {
		return nil, err
	}

	if opts.Output != "" {
		src, err := Render(pkg, opts.Types...)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(opts.Output, src, 0o644); err != nil {
			return nil, fmt.Errorf("mixin(shimgen): %w", err)
		}
		return []string{opts.Output}, nil
	}

	written := make([]string, 0, len(opts.Types))
	for _, name := range opts.Types {
		src, err := Render(pkg, name)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, FileName(name))
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return written, fmt.Errorf("mixin(shimgen): %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}

// FileName returns the default output file name for iface.
func FileName(iface string) string {
	return strings.ToLower(iface) + "_mixin.go"
}

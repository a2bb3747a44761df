package script

import (
	"slices"
	"strings"
	"unicode"

	"github.com/dop251/goja"

	"boxwright/pkg/dom"
)

// styleAccessor maps element.style.camelCase onto the kebab-case
// declarations of the node's style attribute. Writes go through
// SetAttribute so the node is restyled and marked changed.
type styleAccessor struct {
	vm   *goja.Runtime
	node *dom.Node
}

func (s *styleAccessor) Get(key string) goja.Value {
	decls := parseInlineStyle(s.attr())
	if val, ok := decls[camelToKebab(key)]; ok {
		return s.vm.ToValue(val)
	}
	return s.vm.ToValue("")
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	decls := parseInlineStyle(s.attr())
	decls[camelToKebab(key)] = val.String()
	s.node.SetAttribute("style", serializeInlineStyle(decls))
	return true
}

func (s *styleAccessor) Has(string) bool { return true }

func (s *styleAccessor) Delete(key string) bool {
	decls := parseInlineStyle(s.attr())
	delete(decls, camelToKebab(key))
	s.node.SetAttribute("style", serializeInlineStyle(decls))
	return true
}

func (s *styleAccessor) Keys() []string {
	decls := parseInlineStyle(s.attr())
	keys := make([]string, 0, len(decls))
	for k := range decls {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *styleAccessor) attr() string {
	v, _ := s.node.GetAttribute("style")
	return v
}

// parseInlineStyle splits a style attribute into declarations.
func parseInlineStyle(s string) map[string]string {
	result := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		result[strings.TrimSpace(prop)] = strings.TrimSpace(val)
	}
	return result
}

// serializeInlineStyle joins declarations in property order so the
// attribute is stable.
func serializeInlineStyle(m map[string]string) string {
	props := make([]string, 0, len(m))
	for k := range m {
		props = append(props, k)
	}
	slices.Sort(props)
	parts := make([]string, len(props))
	for i, k := range props {
		parts[i] = k + ": " + m[k]
	}
	return strings.Join(parts, "; ")
}

// camelToKebab converts a JS camelCase property name to CSS kebab-case.
func camelToKebab(s string) string {
	if s == "cssFloat" {
		return "float"
	}
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

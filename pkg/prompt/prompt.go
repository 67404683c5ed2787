// Package prompt renders the LLM prompt templates used across the service.
package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// Fill replaces every {name} token in template with the string form of
// vars[name]. Tokens without a binding are left as they are.
//
// Replacement is a single left-to-right pass, so substituted values are
// never rescanned for tokens.
func Fill(template string, vars map[string]any) string {
	if len(vars) == 0 {
		return template
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", stringify(vars[k]))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// ExclusionClause turns a comma or newline separated list of business names
// into the sentence that asks the search model to skip them. It returns ""
// when there is nothing to exclude.
func ExclusionClause(names string) string {
	seen := make(map[string]bool)
	var list []string
	for _, n := range strings.FieldsFunc(names, func(r rune) bool { return r == ',' || r == '\n' }) {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" || seen[key] {
			continue
		}
		seen[key] = true
		list = append(list, n)
	}
	if len(list) == 0 {
		return ""
	}
	return "IMPORTANT: Do NOT include any of these businesses, they were already found: " +
		strings.Join(list, ", ") + ". Find different businesses."
}

package frontmatter

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Inject returns content with its metadata block replaced by d. The body is
// kept byte for byte.
//
// When content opens a block that is never closed, its body cannot be
// located; the block is then serialized with a plain line writer and
// prepended to the untouched original content.
func Inject(content string, d *Data) (string, error) {
	_, body, _, style, err := Split([]byte(content))
	if err != nil {
		return naiveBlock(d) + "\n" + content, nil
	}

	raw, err := d.Marshal(style)
	if err != nil {
		return "", err
	}
	return string(Join(raw, body, true, style)), nil
}

// naiveBlock writes d as `key: value` lines. Lists become indented `- item`
// lines and flat maps become indented `key: value` pairs.
func naiveBlock(d *Data) string {
	var b strings.Builder
	b.WriteString("---\n")
	for _, e := range d.entries() {
		switch v := e.value.(type) {
		case []string:
			writeList(&b, e.key, toAnySlice(v))
		case []any:
			writeList(&b, e.key, v)
		case map[string]any:
			fmt.Fprintf(&b, "%s:\n", e.key)
			for _, k := range sortedKeys(v) {
				fmt.Fprintf(&b, "  %s: %s\n", k, formatScalar(v[k]))
			}
		default:
			fmt.Fprintf(&b, "%s: %s\n", e.key, formatScalar(v))
		}
	}
	b.WriteString("---\n")
	return b.String()
}

func writeList(b *strings.Builder, key string, items []any) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: []\n", key)
		return
	}
	fmt.Fprintf(b, "%s:\n", key)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", formatScalar(item))
	}
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

var (
	plainUnsafe   = regexp.MustCompile(`^[\s\-?:,\[\]{}#&*!|>'"%@` + "`" + `]|\s$|: | #|\n`)
	reservedPlain = regexp.MustCompile(`^(?i:true|false|yes|no|on|off|null|~|[-+]?(\d[\d_]*)?\.?\d+([eE][-+]?\d+)?|0x[0-9a-f]+|0o[0-7]+|\.inf|\.nan)$`)
)

// quoteIfNeeded double-quotes strings a YAML reader would not read back as
// the same plain string.
func quoteIfNeeded(s string) string {
	if s == "" || plainUnsafe.MatchString(s) || reservedPlain.MatchString(s) {
		return strconv.Quote(s)
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package frontmatter

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
)

// Known frontmatter keys, in the order they are written.
const (
	KeyTitle           = "title"
	KeyDescription     = "description"
	KeySidebarLabel    = "sidebar_label"
	KeySidebarPosition = "sidebar_position"
	KeyKeywords        = "keywords"
	KeyHideTitle       = "hide_title"
)

// Data is the metadata block of a documentation page.
//
// Optional fields use pointers or nil slices so that "absent" survives a
// parse/inject round trip. Keys outside the known set are kept in Extra.
type Data struct {
	Title           string
	Description     string
	SidebarLabel    string
	SidebarPosition *int
	Keywords        []string
	HideTitle       *bool
	Extra           map[string]any

	// sidebarPositionRaw holds a sidebar_position that is not an integer.
	// It is written back unchanged and reported by Validate.
	sidebarPositionRaw any
}

// Parse extracts the metadata block from content.
//
// It returns (nil, nil) when content does not begin with a delimiter line,
// and a non-nil empty Data when the block exists but is empty. An opening
// delimiter that is never closed is treated as body text (no metadata).
func Parse(content string) (*Data, error) {
	raw, _, had, _, err := Split([]byte(content))
	if err != nil {
		if errors.Is(err, ErrMissingClosingDelimiter) {
			return nil, nil
		}
		return nil, err
	}
	if !had {
		return nil, nil
	}

	fields, err := ParseYAML(raw)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "invalid frontmatter yaml").Build()
	}
	return dataFromFields(fields)
}

func dataFromFields(fields map[string]any) (*Data, error) {
	d := &Data{}
	var err error
	for key, value := range fields {
		switch key {
		case KeyTitle:
			d.Title, err = scalarString(key, value)
		case KeyDescription:
			d.Description, err = scalarString(key, value)
		case KeySidebarLabel:
			d.SidebarLabel, err = scalarString(key, value)
		case KeySidebarPosition:
			if d.SidebarPosition, err = integerField(key, value); err != nil {
				d.sidebarPositionRaw, err = value, nil
			}
		case KeyKeywords:
			d.Keywords, err = stringList(key, value)
		case KeyHideTitle:
			d.HideTitle, err = boolField(key, value)
		default:
			if d.Extra == nil {
				d.Extra = make(map[string]any)
			}
			d.Extra[key] = value
		}
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

func fieldError(key string, value any, want string) error {
	return ferrors.ParseError(fmt.Sprintf("frontmatter field %q must be %s, got %T", key, want, value)).
		WithContext("field", key).
		Build()
}

func scalarString(key string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v), nil
	default:
		return "", fieldError(key, value, "a string")
	}
}

func integerField(key string, value any) (*int, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int:
		return &v, nil
	case int64:
		n := int(v)
		return &n, nil
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			n := int(v)
			return &n, nil
		}
	}
	return nil, fieldError(key, value, "an integer")
}

func boolField(key string, value any) (*bool, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case bool:
		return &v, nil
	default:
		return nil, fieldError(key, value, "a boolean")
	}
}

func stringList(key string, value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, err := scalarString(key, item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fieldError(key, value, "a list of strings")
	}
}

// entry is one key/value of the block in output order.
type entry struct {
	key   string
	value any
}

// entries lists present fields: known keys first in canonical order, then
// Extra keys sorted.
func (d *Data) entries() []entry {
	if d == nil {
		return nil
	}
	var out []entry
	if d.Title != "" {
		out = append(out, entry{KeyTitle, d.Title})
	}
	if d.Description != "" {
		out = append(out, entry{KeyDescription, d.Description})
	}
	if d.SidebarLabel != "" {
		out = append(out, entry{KeySidebarLabel, d.SidebarLabel})
	}
	if d.SidebarPosition != nil {
		out = append(out, entry{KeySidebarPosition, *d.SidebarPosition})
	} else if d.sidebarPositionRaw != nil {
		out = append(out, entry{KeySidebarPosition, d.sidebarPositionRaw})
	}
	if d.Keywords != nil {
		out = append(out, entry{KeyKeywords, d.Keywords})
	}
	if d.HideTitle != nil {
		out = append(out, entry{KeyHideTitle, *d.HideTitle})
	}
	for _, k := range sortedKeys(d.Extra) {
		out = append(out, entry{k, d.Extra[k]})
	}
	return out
}

func (d *Data) node() (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range d.entries() {
		v, err := nodeFromAny(e.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", e.key, err)
		}
		appendPair(n, e.key, v)
	}
	return n, nil
}

// Marshal serializes d as YAML (without delimiters) in the given style.
func (d *Data) Marshal(style Style) ([]byte, error) {
	n, err := d.node()
	if err != nil {
		return nil, err
	}
	return encodeNode(n, style)
}

// Clone returns a deep copy of the known fields and a shallow copy of Extra.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	c := *d
	if d.SidebarPosition != nil {
		pos := *d.SidebarPosition
		c.SidebarPosition = &pos
	}
	if d.HideTitle != nil {
		hide := *d.HideTitle
		c.HideTitle = &hide
	}
	if d.Keywords != nil {
		c.Keywords = append([]string{}, d.Keywords...)
	}
	if d.Extra != nil {
		c.Extra = make(map[string]any, len(d.Extra))
		for k, v := range d.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

// IntPtr and BoolPtr help build optional fields.
func IntPtr(n int) *int { return &n }

func BoolPtr(b bool) *bool { return &b }

func formatScalar(v any) string {
	switch vv := v.(type) {
	case nil:
		return "null"
	case string:
		return quoteIfNeeded(vv)
	case bool:
		return strconv.FormatBool(vv)
	case int:
		return strconv.Itoa(vv)
	default:
		return quoteIfNeeded(fmt.Sprint(vv))
	}
}

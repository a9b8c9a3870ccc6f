// Package frontmatter parses, validates, generates and injects the YAML
// metadata block (`---` delimited) that leads every generated document.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Style captures the newline shape of a document so rewrites keep it.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// ErrMissingClosingDelimiter indicates the document started with a
// frontmatter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// Split separates the raw frontmatter block from the body.
//
// If the document does not start with a delimiter line, had is false and body
// is the full input. An empty block (`---` immediately followed by `---`)
// yields had=true with empty frontmatter. A closing delimiter on the last line
// without a trailing newline is accepted.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}

	start := len(open)
	rest := content[start:]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, style, nil
	}
	if bytes.Equal(rest, []byte("---")) {
		return []byte{}, []byte{}, true, style, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	if idx := bytes.Index(rest, closeSeq); idx >= 0 {
		end := start + idx + len(nl)
		return content[start:end], content[start+idx+len(closeSeq):], true, style, nil
	}

	closeAtEOF := []byte(nl + "---")
	if bytes.HasSuffix(rest, closeAtEOF) {
		end := len(content) - len("---")
		return content[start:end], []byte{}, true, style, nil
	}

	return nil, nil, false, style, ErrMissingClosingDelimiter
}

// Join reassembles a document from raw frontmatter and body.
//
// If had is false, Join returns body as-is. Otherwise it emits the block with
// `---` delimiters in the newline style captured in Style.
func Join(frontmatter []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	delim := []byte("---" + nl)
	out := make([]byte, 0, 2*len(delim)+len(frontmatter)+len(body))
	out = append(out, delim...)
	out = append(out, frontmatter...)
	out = append(out, delim...)
	out = append(out, body...)
	return out
}

// ParseYAML parses raw frontmatter (without delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			break
		}
	}

	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}

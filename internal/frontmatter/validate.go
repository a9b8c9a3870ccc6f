package frontmatter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxDescriptionLength is the longest accepted description, in characters.
const MaxDescriptionLength = 160

// ValidationIssue is a single rule violation on one field.
type ValidationIssue struct {
	Field   string
	Message string
}

func (i ValidationIssue) Error() string {
	return i.Field + ": " + i.Message
}

// Validate checks d against the metadata rules and returns every violation.
// A nil Data fails the required-field rules.
func Validate(d *Data) []ValidationIssue {
	if d == nil {
		d = &Data{}
	}
	var issues []ValidationIssue

	if strings.TrimSpace(d.Title) == "" {
		issues = append(issues, ValidationIssue{Field: KeyTitle, Message: "title is required"})
	}
	if strings.TrimSpace(d.Description) == "" {
		issues = append(issues, ValidationIssue{Field: KeyDescription, Message: "description is required"})
	} else if n := utf8.RuneCountInString(d.Description); n > MaxDescriptionLength {
		issues = append(issues, ValidationIssue{
			Field:   KeyDescription,
			Message: fmt.Sprintf("description must be at most %d characters (got %d)", MaxDescriptionLength, n),
		})
	}
	if d.sidebarPositionRaw != nil {
		issues = append(issues, ValidationIssue{
			Field:   KeySidebarPosition,
			Message: fmt.Sprintf("sidebar_position must be a non-negative integer (got %v)", d.sidebarPositionRaw),
		})
	}
	if d.SidebarPosition != nil && *d.SidebarPosition < 0 {
		issues = append(issues, ValidationIssue{
			Field:   KeySidebarPosition,
			Message: fmt.Sprintf("sidebar_position must be a non-negative integer (got %d)", *d.SidebarPosition),
		})
	}
	return issues
}

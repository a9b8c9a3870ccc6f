package frontmatter

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsync/internal/docmodel"
)

// TitleCase splits name on '-' and '_' and capitalizes each word:
// "getting-started" becomes "Getting Started".
func TitleCase(name string) string {
	caser := cases.Title(language.English, cases.NoLower)
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// GenerateDefault builds metadata for a document that has none.
func GenerateDefault(name string, typ docmodel.DocumentationType) *Data {
	title := TitleCase(name)
	return &Data{
		Title:        title,
		Description:  defaultDescription(name, title, typ),
		SidebarLabel: name,
	}
}

func defaultDescription(name, title string, typ docmodel.DocumentationType) string {
	switch typ {
	case docmodel.TypeCommand:
		return fmt.Sprintf("Documentation for the %s command", name)
	case docmodel.TypeService:
		return fmt.Sprintf("Documentation for the %s service", name)
	case docmodel.TypeAssistant:
		return fmt.Sprintf("Configuration and usage of the %s assistant", title)
	case docmodel.TypeGuide:
		return fmt.Sprintf("%s guide", title)
	case docmodel.TypeAbout:
		return fmt.Sprintf("About %s", title)
	case docmodel.TypeContributing:
		return fmt.Sprintf("%s contribution guidelines", title)
	case docmodel.TypeArchitecture:
		return fmt.Sprintf("%s architecture overview", title)
	default:
		return fmt.Sprintf("Documentation for %s", title)
	}
}

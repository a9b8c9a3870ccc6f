package frontmatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsync/internal/docmodel"
	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
)

func TestParse_NoBlockIsNoMetadata(t *testing.T) {
	d, err := Parse("# no block")
	require.NoError(t, err)
	require.Nil(t, d)
}

func TestParse_EmptyBlockIsEmptyMetadata(t *testing.T) {
	d, err := Parse("---\n---\n\nBody")
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Equal(t, &Data{}, d)
}

func TestParse_UnclosedBlockIsNoMetadata(t *testing.T) {
	d, err := Parse("---\ntitle: x\n\nno closing line")
	require.NoError(t, err)
	require.Nil(t, d)
}

func TestParse_AllFields(t *testing.T) {
	content := "---\n" +
		"title: Init\n" +
		"description: Set up a project\n" +
		"sidebar_label: init\n" +
		"sidebar_position: 3\n" +
		"keywords: [cli, setup]\n" +
		"hide_title: false\n" +
		"slug: /cli/init\n" +
		"---\n# Init\n"

	d, err := Parse(content)
	require.NoError(t, err)
	require.Equal(t, &Data{
		Title:           "Init",
		Description:     "Set up a project",
		SidebarLabel:    "init",
		SidebarPosition: IntPtr(3),
		Keywords:        []string{"cli", "setup"},
		HideTitle:       BoolPtr(false),
		Extra:           map[string]any{"slug": "/cli/init"},
	}, d)
}

func TestParse_WrongFieldTypeIsParseError(t *testing.T) {
	_, err := Parse("---\nhide_title: [1]\n---\n")
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))
}

func TestParse_NonIntegerSidebarPositionIsValidationIssue(t *testing.T) {
	for _, raw := range []string{"first", "2.5", `"3"`} {
		t.Run(raw, func(t *testing.T) {
			d, err := Parse("---\ntitle: T\ndescription: D\nsidebar_position: " + raw + "\n---\n")
			require.NoError(t, err)
			require.NotNil(t, d)
			require.Nil(t, d.SidebarPosition)

			issues := Validate(d)
			require.Len(t, issues, 1)
			require.Equal(t, KeySidebarPosition, issues[0].Field)
			require.Contains(t, issues[0].Error(), "non-negative integer")
		})
	}
}

func TestInject_KeepsNonIntegerSidebarPosition(t *testing.T) {
	content := "---\ntitle: T\nsidebar_position: first\n---\nBody\n"
	d, err := Parse(content)
	require.NoError(t, err)

	out, err := Inject(content, d)
	require.NoError(t, err)
	require.Equal(t, content, out)
}

func TestParse_InvalidYAMLIsParseError(t *testing.T) {
	_, err := Parse("---\ntitle: [unclosed\n---\nbody")
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))
}

func TestGenerateDefault(t *testing.T) {
	d := GenerateDefault("getting-started", docmodel.TypeGuide)
	require.Equal(t, "Getting Started", d.Title)
	require.Equal(t, "Getting Started guide", d.Description)
	require.Equal(t, "getting-started", d.SidebarLabel)

	cmd := GenerateDefault("add_ai", docmodel.TypeCommand)
	require.Equal(t, "Add Ai", cmd.Title)
	require.Contains(t, cmd.Description, "add_ai")

	svc := GenerateDefault("template-service", docmodel.TypeService)
	require.Contains(t, svc.Description, "template-service")

	require.Empty(t, Validate(GenerateDefault("x", "unknown")))
}

func TestTitleCase_KeepsInnerCapitals(t *testing.T) {
	require.Equal(t, "API Reference", TitleCase("API-reference"))
	require.Equal(t, "A B", TitleCase("a--b"))
	require.Equal(t, "", TitleCase(""))
}

func TestValidate(t *testing.T) {
	issues := Validate(&Data{Title: "", Description: "x"})
	require.Len(t, issues, 1)
	require.Equal(t, KeyTitle, issues[0].Field)

	issues = Validate(&Data{Title: "t", Description: strings.Repeat("a", 200)})
	require.Len(t, issues, 1)
	require.Equal(t, KeyDescription, issues[0].Field)
	require.Contains(t, issues[0].Error(), "160")

	require.Empty(t, Validate(&Data{Title: "t", Description: "d"}))
	require.Empty(t, Validate(&Data{Title: "t", Description: strings.Repeat("é", 160)}))

	issues = Validate(&Data{Title: "  ", Description: "\t", SidebarPosition: IntPtr(-1)})
	require.Len(t, issues, 3)

	require.Len(t, Validate(nil), 2)
}

func TestInject_ReplacesBlockAndKeepsBody(t *testing.T) {
	content := "---\ntitle: Old\n---\n# Heading\n\nBody text.\n"

	out, err := Inject(content, &Data{Title: "New", Description: "Fresh"})
	require.NoError(t, err)
	require.Equal(t, "---\ntitle: New\ndescription: Fresh\n---\n# Heading\n\nBody text.\n", out)
}

func TestInject_PrependsWhenNoBlock(t *testing.T) {
	out, err := Inject("# Heading\n", &Data{Title: "T", Description: "D"})
	require.NoError(t, err)
	require.Equal(t, "---\ntitle: T\ndescription: D\n---\n# Heading\n", out)
}

func TestInject_UnclosedBlockFallsBackWithoutLosingBytes(t *testing.T) {
	content := "---\nthis never closes\n# Heading\n"
	d := &Data{
		Title:       "T: colon",
		Description: "D",
		Keywords:    []string{"a", "b"},
		Extra:       map[string]any{"meta": map[string]any{"owner": "docs"}},
	}

	out, err := Inject(content, d)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(out, content))
	require.Contains(t, out, "keywords:\n  - a\n  - b\n")
	require.Contains(t, out, "meta:\n  owner: docs\n")

	parsed, err := Parse(out)
	require.NoError(t, err)
	require.Equal(t, d, parsed)
}

func TestInject_CRLFDocumentKeepsStyle(t *testing.T) {
	out, err := Inject("---\r\ntitle: a\r\n---\r\nBody\r\n", &Data{Title: "b", Description: "c"})
	require.NoError(t, err)
	require.Equal(t, "---\r\ntitle: b\r\ndescription: c\r\n---\r\nBody\r\n", out)
}

func TestInjectParse_RoundTrip(t *testing.T) {
	contents := []string{
		"",
		"# plain body\n",
		"---\ntitle: existing\n---\nbody\n",
		"---\n---\n",
		"---\nunterminated\n",
		"---\r\nold: 1\r\n---\r\nwindows body\r\n",
	}
	metas := []*Data{
		{},
		{Title: "Only Title"},
		{Title: "Init", Description: "Documentation for the init command", SidebarLabel: "init"},
		{
			Title:           "Everything",
			Description:     "yes: tricky # value",
			SidebarLabel:    "- dash",
			SidebarPosition: IntPtr(0),
			Keywords:        []string{},
			HideTitle:       BoolPtr(true),
		},
		{Title: "K", Description: "D", Keywords: []string{"true", "42", "plain"}},
	}

	for _, content := range contents {
		for _, fm := range metas {
			out, err := Inject(content, fm)
			require.NoError(t, err)
			got, err := Parse(out)
			require.NoError(t, err, "content=%q", content)
			require.Equal(t, fm, got, "content=%q", content)
		}
	}
}

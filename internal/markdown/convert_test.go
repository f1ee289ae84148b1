package markdown

import (
	"strings"
	"testing"

	"github.com/adrg/frontmatter"
)

func str(s string) *string { return &s }

func testMeta() Metadata {
	return Metadata{
		Title:    str("Getting Started"),
		PageID:   str("12345"),
		SpaceKey: str("DOCS"),
		Author:   str("Jane Doe"),
		Created:  str("2023-01-15T10:30:00.000Z"),
		Modified: str("2023-06-02T08:00:00.000Z"),
		URL:      str("https://example.atlassian.net/wiki/spaces/DOCS/pages/12345"),
		ParentID: str("200"),
	}
}

func TestConvertDocumentShape(t *testing.T) {
	doc, err := Convert("<h1>Intro</h1><p>Hello <strong>world</strong></p>", testMeta())
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !strings.HasPrefix(doc, "---\n") {
		t.Errorf("document should open with a frontmatter delimiter, got %q", firstLine(doc))
	}
	if !strings.Contains(doc, "\n---\n\n") {
		t.Error("frontmatter should close with ---, followed by exactly one blank line")
	}
	if !strings.Contains(doc, "# Intro") {
		t.Errorf("body should use ATX headings, got:\n%s", doc)
	}
	if !strings.Contains(doc, "**world**") {
		t.Errorf("body should carry inline formatting, got:\n%s", doc)
	}
}

func TestConvertFrontmatterHasNoTrailingBlankLine(t *testing.T) {
	doc, err := Convert("<p>x</p>", testMeta())
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	lines := strings.Split(doc, "\n")
	if lines[0] != "---" {
		t.Fatalf("first line = %q, want ---", lines[0])
	}
	closing := -1
	for i := 1; i < len(lines); i++ {
		if lines[i] == "---" {
			closing = i
			break
		}
	}
	if closing < 0 {
		t.Fatal("no closing frontmatter delimiter")
	}
	if lines[closing-1] == "" {
		t.Error("frontmatter block should not end with a blank line")
	}
	if closing+1 >= len(lines) || lines[closing+1] != "" {
		t.Error("exactly one blank line should separate frontmatter from body")
	}
}

func TestConvertNullsAreSerialized(t *testing.T) {
	doc, err := Convert("<p>x</p>", Metadata{PageID: str("7")})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	for _, key := range []string{"title", "space_key", "author", "created", "modified", "url", "parent_id"} {
		if !strings.Contains(doc, key+": null") {
			t.Errorf("missing %q as an explicit null in:\n%s", key, doc)
		}
	}
	if !strings.Contains(doc, `page_id: "7"`) && !strings.Contains(doc, "page_id: 7") {
		t.Errorf("page_id not serialized in:\n%s", doc)
	}
}

func TestConvertEmptyBody(t *testing.T) {
	doc, err := Convert("", testMeta())
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.HasSuffix(doc, "---\n\n") {
		t.Errorf("empty body should leave the document ending at the separator, got %q", doc[len(doc)-12:])
	}
}

func TestConvertRoundTrip(t *testing.T) {
	meta := testMeta()
	meta.Author = nil
	meta.ParentID = nil

	doc, err := Convert("<h2>Section</h2><ul><li>One</li><li>Two</li></ul>", meta)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	var parsed Metadata
	body, err := frontmatter.Parse(strings.NewReader(doc), &parsed)
	if err != nil {
		t.Fatalf("parsing frontmatter back: %v", err)
	}

	if parsed.Title == nil || *parsed.Title != "Getting Started" {
		t.Errorf("title did not round-trip, got %v", parsed.Title)
	}
	if parsed.Created == nil || *parsed.Created != "2023-01-15T10:30:00.000Z" {
		t.Errorf("created did not round-trip as a string, got %v", parsed.Created)
	}
	if parsed.Author != nil {
		t.Errorf("author = %q, want null to survive the round trip", *parsed.Author)
	}
	if !strings.Contains(string(body), "## Section") {
		t.Errorf("body lost the heading:\n%s", body)
	}
	if !strings.Contains(string(body), "- One") {
		t.Errorf("body should use hyphen bullets:\n%s", body)
	}
}

func TestConvertTitleCannotBreakDelimiters(t *testing.T) {
	meta := testMeta()
	meta.Title = str("--- sneaky title")

	doc, err := Convert("<p>x</p>", meta)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	delimiters := 0
	for _, line := range strings.Split(doc, "\n") {
		if line == "---" {
			delimiters++
		}
	}
	if delimiters != 2 {
		t.Errorf("document has %d bare --- lines, want exactly 2:\n%s", delimiters, doc)
	}

	var parsed Metadata
	if _, err := frontmatter.Parse(strings.NewReader(doc), &parsed); err != nil {
		t.Fatalf("parsing frontmatter back: %v", err)
	}
	if parsed.Title == nil || *parsed.Title != "--- sneaky title" {
		t.Errorf("title = %v, want the raw value preserved", parsed.Title)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

package markdown

import "github.com/bzoboki/confluence-md/internal/confluence"

// Metadata is the frontmatter written at the top of every exported file.
// The key set is fixed and total: fields missing from the source page
// serialize as null rather than disappearing, so every exported file
// carries the same keys.
type Metadata struct {
	Title    *string `yaml:"title"`
	PageID   *string `yaml:"page_id"`
	SpaceKey *string `yaml:"space_key"`
	Author   *string `yaml:"author"`
	Created  *string `yaml:"created"`
	Modified *string `yaml:"modified"`
	URL      *string `yaml:"url"`
	ParentID *string `yaml:"parent_id"`
}

// ExtractMetadata maps a fetched page onto the frontmatter record.
// baseURL turns the page's relative web link into an absolute URL;
// parent_id is the nearest ancestor, the last entry of the chain.
func ExtractMetadata(page *confluence.Page, baseURL string) Metadata {
	var m Metadata
	m.Title = orNull(page.Title)
	m.PageID = orNull(page.ID)
	if page.Space != nil {
		m.SpaceKey = orNull(page.Space.Key)
	}
	if page.History != nil {
		if page.History.CreatedBy != nil {
			m.Author = orNull(page.History.CreatedBy.DisplayName)
		}
		m.Created = orNull(page.History.CreatedDate)
	}
	if page.Version != nil {
		m.Modified = orNull(page.Version.When)
	}
	if page.Links != nil && page.Links.WebUI != "" {
		m.URL = orNull(baseURL + page.Links.WebUI)
	}
	if n := len(page.Ancestors); n > 0 {
		m.ParentID = orNull(page.Ancestors[n-1].ID)
	}
	return m
}

// orNull maps the empty string to a YAML null.
func orNull(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

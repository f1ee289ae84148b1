package confluence

// Page is a single content node fetched with the full expansion set:
// body, history, version, space, and ancestors. Only the ID is guaranteed
// to be present; everything else depends on what the instance returns.
type Page struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	Title     string     `json:"title"`
	Space     *Space     `json:"space"`
	History   *History   `json:"history"`
	Version   *Version   `json:"version"`
	Ancestors []Ancestor `json:"ancestors"`
	Body      *Body      `json:"body"`
	Links     *Links     `json:"_links"`
}

// BodyHTML returns the page's storage-format HTML, or "" when the body
// expansion is missing.
func (p *Page) BodyHTML() string {
	if p.Body == nil || p.Body.Storage == nil {
		return ""
	}
	return p.Body.Storage.Value
}

// Space identifies the space a page belongs to.
type Space struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// History carries creation metadata.
type History struct {
	CreatedDate string `json:"createdDate"`
	CreatedBy   *User  `json:"createdBy"`
}

// User is a Confluence account reference.
type User struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Version carries last-modification metadata.
type Version struct {
	When   string `json:"when"`
	Number int    `json:"number"`
}

// Ancestor is one entry of a page's ancestor chain, ordered root first.
type Ancestor struct {
	ID string `json:"id"`
}

// Body wraps the content representations of a page.
type Body struct {
	Storage *Storage `json:"storage"`
}

// Storage is the XHTML storage representation of a page body.
type Storage struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

// Links holds the subset of _links this tool reads: the relative web UI
// link on pages and the next-page link on child listings.
type Links struct {
	WebUI string `json:"webui"`
	Next  string `json:"next"`
}

// ChildPage is one entry of a child listing. Listings are shallow; only
// identity fields are populated, never bodies or ancestors.
type ChildPage struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Title  string `json:"title"`
}

// childList is one page of a paginated child listing response.
type childList struct {
	Results []ChildPage `json:"results"`
	Start   int         `json:"start"`
	Limit   int         `json:"limit"`
	Size    int         `json:"size"`
	Links   *Links      `json:"_links"`
}

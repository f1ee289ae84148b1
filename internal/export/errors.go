package export

import "fmt"

// RecursionLimitError marks a node at or beyond the depth bound. The
// node is failed before any remote call is made, so the error never
// reaches the client layer.
type RecursionLimitError struct {
	PageID   string
	MaxDepth int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("maximum recursion depth (%d) reached for page %s", e.MaxDepth, e.PageID)
}

package export

// Result tallies an export run. Succeeded plus Failed is the number of
// nodes visited; descendants of a failed node are never visited and
// never counted.
type Result struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Total returns the number of nodes visited.
func (r Result) Total() int {
	return r.Succeeded + r.Failed
}

// AllSucceeded reports whether every visited node exported cleanly.
func (r Result) AllSucceeded() bool {
	return r.Failed == 0
}

package ident

// Counts aggregate statuses into summary buckets.
type Counts struct {
	OK       int
	Redirect int
	NotFound int
	Error    int
	Total    int
}

// Add counts a status. Both redirect statuses go to Redirect, every
// status that is not ok, redirect or not_found goes to Error.
func (c *Counts) Add(s Status) {
	c.Total++
	switch s {
	case StatusOK:
		c.OK++
	case StatusRedirect, StatusRedirectOK:
		c.Redirect++
	case StatusNotFound:
		c.NotFound++
	default:
		c.Error++
	}
}

package doi

import "context"

// OAChecker looks up open access status of DOIs.
type OAChecker interface {
	// Check queries the status of a DOI. A failed lookup is returned as
	// an OA with Err set.
	Check(ctx context.Context, doi string) OA
}

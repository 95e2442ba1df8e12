package queries

import (
	"github.com/DanSBol/shareit/internal/pkg/errs"
)

const DefaultPageSize = 20

// Page is a resolved limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

// NewPage resolves the wire-level from/size pair. The original API treats
// "from" as a page-count hint, not a raw offset: the requested page index
// is from/size (integer division) when from > 0, else page zero. Kept
// as-is; callers that want a raw offset must convert on their side.
func NewPage(from, size int) (Page, error) {
	switch {
	case from < 0 && size < 1:
		return Page{}, errs.Markf(errs.ErrInvalidPagination, "negative from (%d) and non-positive size (%d)", from, size)
	case from < 0:
		return Page{}, errs.Markf(errs.ErrInvalidPagination, "negative from: %d", from)
	case size < 1:
		return Page{}, errs.Markf(errs.ErrInvalidPagination, "non-positive size: %d", size)
	}

	page := 0
	if from > 0 {
		page = from / size
	}
	return Page{Limit: size, Offset: page * size}, nil
}

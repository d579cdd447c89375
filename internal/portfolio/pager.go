package portfolio

import "github.com/Zachkp/folio/internal/models"

// InquiryPageSize is how many inquiries the admin contacts tab shows per page
const InquiryPageSize = 10

// Pager describes the visible window of a paginated inquiry listing
type Pager struct {
	Page       int
	TotalPages int
	Total      int
	// Start and End are the 1-based positions of the first and last visible
	// items, both zero for an empty page
	Start int
	End   int
}

// NewPager derives the window for page
func NewPager(page models.InquiryPage) Pager {
	p := Pager{
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
	}
	if len(page.Items) > 0 {
		p.Start = (page.Page-1)*page.PageSize + 1
		p.End = p.Start + len(page.Items) - 1
	}
	return p
}

// Show reports whether pagination controls are needed. A page past the end
// still needs them to get back.
func (p Pager) Show() bool {
	return p.TotalPages > 1 || p.pastEnd()
}

func (p Pager) pastEnd() bool {
	return p.Page > max(1, p.TotalPages)
}

// HasPrev reports whether there is an earlier page
func (p Pager) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether there is a later page
func (p Pager) HasNext() bool {
	return p.Page < p.TotalPages
}

// Prev is the previous page number, never below 1. Past the end it is the
// last page.
func (p Pager) Prev() int {
	if p.pastEnd() {
		return max(1, p.TotalPages)
	}
	return max(1, p.Page-1)
}

// Next is the next page number, never past the last page
func (p Pager) Next() int {
	return max(1, min(p.TotalPages, p.Page+1))
}

package invoice

// Layout holds the printed dimensions of an invoice page, in millimetres.
type Layout struct {
	PageWidth          float64
	PageHeight         float64
	FirstHeader        float64
	ContinuationHeader float64
	Row                float64
	Footer             float64
}

// A4 is the layout invoices are printed with.
var A4 = Layout{
	PageWidth:          210,
	PageHeight:         295,
	FirstHeader:        95,
	ContinuationHeader: 25,
	Row:                14,
	Footer:             80,
}

// Paginate splits rows item rows over pages and returns the number of rows
// on each page. The first page carries the full header and later pages a
// short one. The footer goes on the last page, which is added empty when the
// rows leave no room for it. There is always at least one page.
func (l Layout) Paginate(rows int) []int {
	var pages []int
	remaining := rows
	for {
		header := l.ContinuationHeader
		if len(pages) == 0 {
			header = l.FirstHeader
		}
		capacity := int((l.PageHeight - header) / l.Row)
		if capacity < 1 {
			capacity = 1
		}

		n := remaining
		if n > capacity {
			n = capacity
		}
		pages = append(pages, n)
		remaining -= n

		if remaining == 0 {
			used := header + float64(n)*l.Row
			if l.PageHeight-used < l.Footer {
				pages = append(pages, 0)
			}
			return pages
		}
	}
}

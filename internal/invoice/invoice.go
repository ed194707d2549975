// Package invoice builds the printable invoice of an order and renders it as
// paginated HTML ready for the browser's print-to-PDF path.
package invoice

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/i18n"
	"github.com/KareemMohsenAli/kitchenProducts/internal/ledger"
)

type Line struct {
	// Number is the 1-based position of the item in the order.
	Number        int
	Item          domain.OrderItem
	CategoryLabel string
	StatusLabel   string
}

type PaymentLine struct {
	Label  string
	Amount float64
	Date   string
}

type Page struct {
	Number int
	Count  int
	Lines  []Line
	First  bool
	Last   bool
}

// Invoice is the view model of one rendered invoice.
type Invoice struct {
	loc *i18n.Localizer

	Lang                 string
	Dir                  string
	Title                string
	OrderID              int64
	OrderDate            string
	CustomerName         string
	Address              string
	Lines                []Line
	ItemCount            int
	SelectedTotal        float64
	GrandTotal           float64
	Payments             []PaymentLine
	TotalAdvancePayments float64
	RemainingAmount      float64
	Pages                []Page
	PageWidth            float64
	PageHeight           float64
}

// Build assembles the invoice of order for the items at the given 0-based
// indexes. Unknown indexes are ignored and duplicates collapse; a selection
// left with no valid index selects every item. user may be nil for an
// orphaned order.
func Build(order domain.Order, user *domain.User, selected []int, loc *i18n.Localizer, layout Layout, now time.Time) *Invoice {
	customer := domain.UnknownUserLabel(order.UserID)
	if user != nil {
		customer = user.Name
	}

	inv := &Invoice{
		loc:          loc,
		Lang:         loc.Lang(),
		Dir:          loc.Dir(),
		Title:        Filename(customer, loc.Lang(), now),
		OrderID:      order.ID,
		OrderDate:    order.CreatedAt.UTC().Format("2006-01-02"),
		CustomerName: customer,
		ItemCount:    len(order.Items),
		GrandTotal:   order.TotalAmount,
		PageWidth:    layout.PageWidth,
		PageHeight:   layout.PageHeight,
	}
	if order.Address != nil {
		inv.Address = *order.Address
	}

	totals := []float64{}
	for _, idx := range selectedIndexes(selected, len(order.Items)) {
		item := order.Items[idx]
		inv.Lines = append(inv.Lines, Line{
			Number:        idx + 1,
			Item:          item,
			CategoryLabel: loc.Category(item.Category),
			StatusLabel:   loc.T(string(item.Status)),
		})
		totals = append(totals, item.Total)
	}
	inv.SelectedTotal = ledger.Sum(totals)

	for i, p := range order.AdvancePayments {
		amount := ledger.ParseNumberOrZero(string(p.Amount))
		if amount <= 0 {
			continue
		}
		inv.Payments = append(inv.Payments, PaymentLine{
			Label:  loc.Format("paymentLabel", loc.T(ledger.PaymentLabelKey(i))),
			Amount: amount,
			Date:   p.Date,
		})
	}
	agg := ledger.ComputeAdvanceAggregate(order.TotalAmount, order.AdvancePayments)
	inv.TotalAdvancePayments = agg.Total
	inv.RemainingAmount = agg.Remaining

	counts := layout.Paginate(len(inv.Lines))
	start := 0
	for i, n := range counts {
		inv.Pages = append(inv.Pages, Page{
			Number: i + 1,
			Count:  len(counts),
			Lines:  inv.Lines[start : start+n],
			First:  i == 0,
			Last:   i == len(counts)-1,
		})
		start += n
	}
	return inv
}

// T translates key in the invoice language.
func (inv *Invoice) T(key string) string {
	return inv.loc.T(key)
}

// PageLabel is the "page N of M" label. Numbers stay in ASCII digits in
// every language, like the money amounts.
func (inv *Invoice) PageLabel(p Page) string {
	return inv.loc.Format("pageOf", strconv.Itoa(p.Number), strconv.Itoa(p.Count))
}

// Money renders an amount with two decimals and the currency.
func (inv *Invoice) Money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + " " + inv.loc.T("currency")
}

func (inv *Invoice) Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fixed renders v with two decimals.
func (inv *Invoice) Fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Filename is the suggested PDF name for an invoice printed at now.
func Filename(customer, lang string, now time.Time) string {
	return "eslam-order-" + strings.TrimSpace(customer) + "-" + lang + "-" + now.UTC().Format("2006-01-02") + ".pdf"
}

// ParseSelection reads a comma-separated list of 0-based item indexes.
func ParseSelection(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

func selectedIndexes(selected []int, count int) []int {
	seen := map[int]struct{}{}
	var out []int
	for _, idx := range selected {
		if idx < 0 || idx >= count {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	if len(out) == 0 {
		out = make([]int, count)
		for i := range out {
			out[i] = i
		}
	}
	sort.Ints(out)
	return out
}

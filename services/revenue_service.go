package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"tomato-backend/pkg/apperr"
	"tomato-backend/repository"
)

// Period is the closed set of chart granularities. Each carries its own
// window start, label set, and bucket-key rule; the aggregation itself is
// implemented once for all of them and for both scopes.
type Period int

const (
	PeriodToday Period = iota
	PeriodWeekly
	PeriodMonthly
	PeriodYearly
)

// ParsePeriod rejects unknown values instead of silently falling back.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return PeriodToday, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	case "yearly":
		return PeriodYearly, nil
	default:
		return 0, apperr.Wrapf(apperr.ErrInvalidRequest, "unknown period %q", s)
	}
}

// Scope restricts the aggregation to one restaurant or spans the platform.
// A restaurant's revenue is the base amount of its orders; the platform's
// revenue is the GST + platform fee collected on top of them.
type Scope struct {
	RestaurantID *uint
}

func MerchantScope(restID uint) Scope { return Scope{RestaurantID: &restID} }
func PlatformScope() Scope            { return Scope{} }

func (s Scope) valueExpr() string {
	if s.RestaurantID != nil {
		return "base_amount"
	}
	return "gst_amount + platform_fee_amount"
}

type ChartPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

type SummaryBlock struct {
	Revenue       int64 `json:"revenue"`
	OrderCount    int64 `json:"orderCount"`
	AvgOrderValue int64 `json:"avgOrderValue"`
}

type RevenueReport struct {
	AllTime     SummaryBlock `json:"allTime"`
	Today       SummaryBlock `json:"today"`
	ThisWeek    SummaryBlock `json:"thisWeek"`
	ThisMonth   SummaryBlock `json:"thisMonth"`
	ThisYear    SummaryBlock `json:"thisYear"`
	ChartSeries []ChartPoint `json:"chartSeries"`
}

type RevenueService struct {
	Repo *repository.OrderRepository

	// overridable clock, fixed in tests
	now func() time.Time
}

func NewRevenueService(repo *repository.OrderRepository) *RevenueService {
	return &RevenueService{Repo: repo, now: time.Now}
}

// Report computes the fixed summary blocks plus the chart series for the
// requested period. Cancelled orders never contribute. All queries are
// read-only and honor ctx cancellation.
func (s *RevenueService) Report(ctx context.Context, scope Scope, period Period) (*RevenueReport, error) {
	now := s.now()
	expr := scope.valueExpr()

	dayStart := startOfDay(now)
	weekStart := dayStart.AddDate(0, 0, -6)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	rep := &RevenueReport{}
	windows := []struct {
		dst  *SummaryBlock
		from *time.Time
	}{
		{&rep.AllTime, nil},
		{&rep.Today, &dayStart},
		{&rep.ThisWeek, &weekStart},
		{&rep.ThisMonth, &monthStart},
		{&rep.ThisYear, &yearStart},
	}
	for _, w := range windows {
		rev, cnt, err := s.Repo.RevenueTotals(ctx, expr, scope.RestaurantID, w.from)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		*w.dst = summarize(rev, cnt)
	}

	b := period.bucketing(now)
	rows, err := s.Repo.RevenueRows(ctx, expr, scope.RestaurantID, b.from)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	loc := now.Location()
	values := make([]int64, len(b.labels))
	for _, row := range rows {
		if i := b.keyFor(row.CreatedAt.In(loc)); i >= 0 && i < len(values) {
			values[i] += row.Value
		}
	}
	rep.ChartSeries = make([]ChartPoint, len(b.labels))
	for i, label := range b.labels {
		rep.ChartSeries[i] = ChartPoint{Label: label, Value: values[i]}
	}
	return rep, nil
}

func summarize(revenue, count int64) SummaryBlock {
	var avg int64
	if count > 0 {
		avg = int64(math.Round(float64(revenue) / float64(count)))
	}
	return SummaryBlock{Revenue: revenue, OrderCount: count, AvgOrderValue: avg}
}

// bucketing is one period's chart layout: the window start, the full
// zero-filled label list, and the label index for a creation time.
type bucketing struct {
	from   time.Time
	labels []string
	keyFor func(time.Time) int
}

var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func (p Period) bucketing(now time.Time) bucketing {
	switch p {
	case PeriodToday:
		labels := make([]string, 24)
		for h := range labels {
			labels[h] = fmt.Sprintf("%d:00", h)
		}
		return bucketing{
			from:   startOfDay(now),
			labels: labels,
			keyFor: func(t time.Time) int { return t.Hour() },
		}

	case PeriodWeekly:
		// trailing 7 days; labels stay in fixed Sun..Sat order
		return bucketing{
			from:   startOfDay(now).AddDate(0, 0, -6),
			labels: weekdayLabels,
			keyFor: func(t time.Time) int { return int(t.Weekday()) },
		}

	case PeriodMonthly:
		// ISO weeks intersecting the current calendar month, zero-filled
		// and labeled Week 1..n in calendar order
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		index := map[int]int{}
		var labels []string
		for d := monthStart; d.Month() == now.Month(); d = d.AddDate(0, 0, 1) {
			_, wk := d.ISOWeek()
			if _, ok := index[wk]; !ok {
				index[wk] = len(labels)
				labels = append(labels, fmt.Sprintf("Week %d", len(labels)+1))
			}
		}
		return bucketing{
			from:   monthStart,
			labels: labels,
			keyFor: func(t time.Time) int {
				_, wk := t.ISOWeek()
				if i, ok := index[wk]; ok {
					return i
				}
				return -1
			},
		}

	default: // PeriodYearly
		return bucketing{
			from:   time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()),
			labels: monthLabels,
			keyFor: func(t time.Time) int { return int(t.Month()) - 1 },
		}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

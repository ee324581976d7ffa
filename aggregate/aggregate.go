package aggregate

import (
	"math"
	"sort"
	"strings"
	"time"

	"leads-service/classifier"
	"leads-service/leads"
	"leads-service/models"
)

// TopReferencesLimit caps the reference frequency table.
const TopReferencesLimit = 10

// Filters narrows the record set before aggregation. Zero values mean no
// filtering. Date bounds are inclusive at civil-date granularity.
type Filters struct {
	PropertyType classifier.PropertyType
	From         time.Time
	To           time.Time
}

// TypeInterest is the per-type interest breakdown shown on the dashboard.
type TypeInterest struct {
	PropertyType string  `json:"tipo"`
	Total        int     `json:"total"`
	Interest     int     `json:"com_interesse"`
	Rate         float64 `json:"taxa_interesse"`
}

// DailyPoint is one day of the lead timeline. Days without leads are
// omitted, never zero-filled.
type DailyPoint struct {
	Date     string `json:"data"`
	Total    int    `json:"total"`
	Interest int    `json:"com_interesse"`
}

// HourlyPoint is one hour-of-day bucket; only hours present in the data
// appear.
type HourlyPoint struct {
	Hour     int `json:"hora"`
	Total    int `json:"total"`
	Interest int `json:"com_interesse"`
}

// ReferenceCount is one row of the top-references frequency table.
type ReferenceCount struct {
	Reference string `json:"referencia"`
	Count     int    `json:"total"`
}

// View is the derived aggregate over a snapshot of lead records. It is
// recomputed on every read and never persisted.
type View struct {
	Total          int              `json:"total_leads"`
	InterestCount  int              `json:"interesse_visita"`
	InterestRate   float64          `json:"taxa_interesse"`
	NoInterest     int              `json:"sem_interesse"`
	TypeCounts     map[string]int   `json:"tipos_imovel"`
	CampaignCounts map[string]int   `json:"lancamentos"`
	TypeBreakdown  []TypeInterest   `json:"interesse_por_tipo"`
	Daily          []DailyPoint     `json:"serie_diaria"`
	Hourly         []HourlyPoint    `json:"distribuicao_horaria"`
	TopReferences  []ReferenceCount `json:"top_referencias"`
}

// Aggregator computes derived views over lead records. The tracked
// campaign names and timezone are injected at construction.
type Aggregator struct {
	campaigns []string
	loc       *time.Location
}

func New(campaigns []string, loc *time.Location) *Aggregator {
	return &Aggregator{campaigns: campaigns, loc: loc}
}

// VisitInterested reports whether a stored Interesse Visita value counts
// as interest. Matching is case-insensitive against {true, sim, yes}.
func VisitInterested(value string) bool {
	switch strings.ToLower(value) {
	case "true", "sim", "yes":
		return true
	}
	return false
}

// RateRounded is the zero-decimal interest rate used by the legacy read
// endpoint. RatePercent is the one-decimal rate used by the dashboard.
// They are intentionally separate computations: each backs a different
// existing consumer contract.
func RateRounded(interest, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(interest) / float64(total) * 100))
}

func RatePercent(interest, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(interest)/float64(total)*1000) / 10
}

// Aggregate computes the full view over the given records. It is read-only
// and idempotent. Records whose timestamp does not parse stay in the
// simple totals but are excluded from the daily and hourly series; when a
// date-range filter is active they are excluded entirely, since their
// membership in the range cannot be established.
func (a *Aggregator) Aggregate(records []models.Lead, f Filters) *View {
	filtered := make([]models.Lead, 0, len(records))
	stamps := make([]*time.Time, 0, len(records))

	for _, rec := range records {
		if f.PropertyType != "" && rec.PropertyType != f.PropertyType {
			continue
		}

		var stamp *time.Time
		if ts, err := leads.ParseTimestamp(rec.Timestamp, a.loc); err == nil {
			stamp = &ts
		}

		if !f.From.IsZero() || !f.To.IsZero() {
			if stamp == nil || !inDateRange(*stamp, f.From, f.To) {
				continue
			}
		}

		filtered = append(filtered, rec)
		stamps = append(stamps, stamp)
	}

	view := &View{
		TypeCounts:     map[string]int{},
		CampaignCounts: map[string]int{},
	}

	typeInterest := map[string]int{}
	daily := map[string]*DailyPoint{}
	hourly := map[int]*HourlyPoint{}
	refCounts := map[string]int{}
	refOrder := []string{}

	for i, rec := range filtered {
		interested := VisitInterested(rec.VisitInterest)

		view.Total++
		if interested {
			view.InterestCount++
		}

		view.TypeCounts[string(rec.PropertyType)]++
		if interested {
			typeInterest[string(rec.PropertyType)]++
		}

		if _, seen := refCounts[rec.Reference]; !seen {
			refOrder = append(refOrder, rec.Reference)
		}
		refCounts[rec.Reference]++

		if stamp := stamps[i]; stamp != nil {
			day := stamp.Format("2006-01-02")
			if daily[day] == nil {
				daily[day] = &DailyPoint{Date: day}
			}
			daily[day].Total++
			if interested {
				daily[day].Interest++
			}

			hour := stamp.Hour()
			if hourly[hour] == nil {
				hourly[hour] = &HourlyPoint{Hour: hour}
			}
			hourly[hour].Total++
			if interested {
				hourly[hour].Interest++
			}
		}
	}

	// Campaign counts match the stored reference exactly, independent of
	// classification, to keep the legacy per-campaign view stable.
	for _, name := range a.campaigns {
		view.CampaignCounts[name] = 0
	}
	for _, rec := range filtered {
		if _, tracked := view.CampaignCounts[rec.Reference]; tracked {
			view.CampaignCounts[rec.Reference]++
		}
	}

	view.InterestRate = RatePercent(view.InterestCount, view.Total)
	view.NoInterest = view.Total - view.InterestCount

	view.TypeBreakdown = make([]TypeInterest, 0, len(view.TypeCounts))
	for ptype, total := range view.TypeCounts {
		view.TypeBreakdown = append(view.TypeBreakdown, TypeInterest{
			PropertyType: ptype,
			Total:        total,
			Interest:     typeInterest[ptype],
			Rate:         RatePercent(typeInterest[ptype], total),
		})
	}
	sort.Slice(view.TypeBreakdown, func(i, j int) bool {
		return view.TypeBreakdown[i].PropertyType < view.TypeBreakdown[j].PropertyType
	})

	view.Daily = make([]DailyPoint, 0, len(daily))
	for _, point := range daily {
		view.Daily = append(view.Daily, *point)
	}
	sort.Slice(view.Daily, func(i, j int) bool {
		return view.Daily[i].Date < view.Daily[j].Date
	})

	view.Hourly = make([]HourlyPoint, 0, len(hourly))
	for hour := 0; hour < 24; hour++ {
		if point := hourly[hour]; point != nil {
			view.Hourly = append(view.Hourly, *point)
		}
	}

	// Descending by count, ties broken by first-seen order.
	sort.SliceStable(refOrder, func(i, j int) bool {
		return refCounts[refOrder[i]] > refCounts[refOrder[j]]
	})
	limit := len(refOrder)
	if limit > TopReferencesLimit {
		limit = TopReferencesLimit
	}
	view.TopReferences = make([]ReferenceCount, 0, limit)
	for _, ref := range refOrder[:limit] {
		view.TopReferences = append(view.TopReferences, ReferenceCount{
			Reference: ref,
			Count:     refCounts[ref],
		})
	}

	return view
}

func inDateRange(ts, from, to time.Time) bool {
	day := civilDate(ts)
	if !from.IsZero() && day.Before(civilDate(from)) {
		return false
	}
	if !to.IsZero() && day.After(civilDate(to)) {
		return false
	}
	return true
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

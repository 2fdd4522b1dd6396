package services

import (
	"sort"

	"opdash/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct{}

// NewReportingService creates a new ReportingService instance
func NewReportingService() ReportingService {
	return &reportingServiceImpl{}
}

// Compute derives the full metrics view from state. It holds no cache, so
// every call recomputes from scratch.
func (r *reportingServiceImpl) Compute(state State) Metrics {
	m := Metrics{
		ActiveCount:   len(state.Active),
		HistoryCount:  len(state.History),
		ActiveSeries:  BuildSeries(state.Active),
		HistorySeries: BuildSeries(state.History),
	}

	for _, t := range state.Active {
		switch t.Status {
		case domain.StatusPending:
			m.Status.Pending++
		case domain.StatusInProgress:
			m.Status.InProgress++
		case domain.StatusDone:
			m.Status.Done++
		}
		m.AssignedTotal += t.AssignedCount
		m.WorkedTotal += t.WorkedCount
	}

	for _, t := range state.History {
		m.Status.Done++
		m.HistoryWorked += t.WorkedCount
	}

	m.CompletionPercent = CompletionPercent(m.WorkedTotal, m.AssignedTotal)
	if remaining := m.AssignedTotal - m.WorkedTotal; remaining > 0 {
		m.RemainingUnits = remaining
	}

	return m
}

// CompletionPercent returns worked/assigned as a percentage, 0 when nothing
// is assigned
func CompletionPercent(worked, assigned int) float64 {
	if assigned <= 0 {
		return 0
	}
	return float64(worked) / float64(assigned) * 100
}

// BuildSeries groups tasks by country, priority and owner. Country and
// priority series list every enum value in declaration order; owners are
// sorted by name.
func BuildSeries(tasks []domain.Task) Series {
	byCountry := make(map[domain.Country]*SeriesPoint, len(domain.Countries))
	countries := make([]SeriesPoint, len(domain.Countries))
	for i, c := range domain.Countries {
		countries[i].Label = string(c)
		byCountry[c] = &countries[i]
	}

	byPriority := make(map[domain.Priority]*SeriesPoint, len(domain.Priorities))
	priorities := make([]SeriesPoint, len(domain.Priorities))
	for i, p := range domain.Priorities {
		priorities[i].Label = string(p)
		byPriority[p] = &priorities[i]
	}

	byOwner := make(map[string]*SeriesPoint)

	for _, t := range tasks {
		if point, ok := byCountry[t.Country]; ok {
			point.add(t)
		}
		if point, ok := byPriority[t.Priority]; ok {
			point.add(t)
		}
		point, ok := byOwner[t.Owner]
		if !ok {
			point = &SeriesPoint{Label: t.Owner}
			byOwner[t.Owner] = point
		}
		point.add(t)
	}

	owners := make([]SeriesPoint, 0, len(byOwner))
	for _, point := range byOwner {
		owners = append(owners, *point)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].Label < owners[j].Label })

	return Series{
		ByCountry:  countries,
		ByPriority: priorities,
		ByOwner:    owners,
	}
}

func (p *SeriesPoint) add(t domain.Task) {
	p.Tasks++
	p.Assigned += t.AssignedCount
	p.Worked += t.WorkedCount
}

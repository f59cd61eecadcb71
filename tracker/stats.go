package tracker

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/solar-ops-backend/models"
)

// Statistics are the dashboard counters over a project list.
type Statistics struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	InProgress      int `json:"inProgress"`
	Planned         int `json:"planned"`
	OnHold          int `json:"onHold"`
	AverageProgress int `json:"averageProgress"`
}

// Summarize counts projects by status. AverageProgress is 0 for an empty list.
func Summarize(projects []models.Project) Statistics {
	var s Statistics
	sum := 0
	for _, p := range projects {
		s.Total++
		sum += p.Progress
		switch p.Status {
		case models.ProjectCompleted:
			s.Completed++
		case models.ProjectInProgress:
			s.InProgress++
		case models.ProjectPlanned:
			s.Planned++
		case models.ProjectOnHold:
			s.OnHold++
		}
	}
	if s.Total > 0 {
		s.AverageProgress = int(math.Round(float64(sum) / float64(s.Total)))
	}
	return s
}

// CountyProgress is one bar of the progress-by-county chart.
type CountyProgress struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ProgressByCounty averages progress per county, ordered by first appearance.
func ProgressByCounty(projects []models.Project) []CountyProgress {
	type acc struct{ sum, n int }
	order := []string{}
	totals := map[string]*acc{}
	for _, p := range projects {
		a, ok := totals[p.County]
		if !ok {
			a = &acc{}
			totals[p.County] = a
			order = append(order, p.County)
		}
		a.sum += p.Progress
		a.n++
	}

	out := make([]CountyProgress, 0, len(order))
	for _, county := range order {
		a := totals[county]
		out = append(out, CountyProgress{Name: county, Value: int(math.Round(float64(a.sum) / float64(a.n)))})
	}
	return out
}

// CountyCount is a county and the number of sites in it.
type CountyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SiteSummary is the header of the sites screen.
type SiteSummary struct {
	TotalSites         int           `json:"totalSites"`
	ActiveSites        int           `json:"activeSites"`
	TotalCapacity      float64       `json:"totalCapacity"`
	RecentSites        int           `json:"recentSites"`
	CountyDistribution []CountyCount `json:"countyDistribution"`
}

const (
	recentSiteWindow = 30 * 24 * time.Hour
	topCounties      = 5
)

// SummarizeSites aggregates sites as of now. Capacities that do not parse
// as a number count as zero.
func SummarizeSites(sites []models.Site, now time.Time) SiteSummary {
	s := SiteSummary{TotalSites: len(sites), CountyDistribution: []CountyCount{}}
	index := map[string]int{}
	for _, site := range sites {
		if site.IsActive {
			s.ActiveSites++
		}
		s.TotalCapacity += parseCapacity(site.Capacity)
		if created, ok := parseCreatedAt(site.CreatedAt); ok && now.Sub(created) <= recentSiteWindow {
			s.RecentSites++
		}

		i, ok := index[site.County]
		if !ok {
			i = len(s.CountyDistribution)
			index[site.County] = i
			s.CountyDistribution = append(s.CountyDistribution, CountyCount{Name: site.County})
		}
		s.CountyDistribution[i].Count++
	}

	sort.SliceStable(s.CountyDistribution, func(i, j int) bool {
		return s.CountyDistribution[i].Count > s.CountyDistribution[j].Count
	})
	if len(s.CountyDistribution) > topCounties {
		s.CountyDistribution = s.CountyDistribution[:topCounties]
	}
	return s
}

// parseCapacity reads the leading number of values like "50" or "50 kW".
func parseCapacity(v string) float64 {
	v = strings.TrimSpace(v)
	end := 0
	for end < len(v) && (v[end] == '.' || v[end] == '-' || (v[end] >= '0' && v[end] <= '9')) {
		end++
	}
	f, err := strconv.ParseFloat(v[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

func parseCreatedAt(v string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, models.DateLayout} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package analysis

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/prat-1729/aqi-data-visualization/internal/domain"
)

// RequiredColumns must be present in a table passed to Analyze.
var RequiredColumns = []string{
	domain.ColCity, domain.ColAQI, domain.ColMonth, domain.ColSeason, domain.ColHealthCategory,
}

// Analyze computes every statistic over a cleaned table. It only reads df.
func Analyze(df dataframe.DataFrame) (*Report, error) {
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("%w: empty table", domain.ErrNoData)
	}
	names := df.Names()
	if err := domain.RequireColumns(names, RequiredColumns...); err != nil {
		return nil, err
	}

	aqi, err := floatColumn(df, domain.ColAQI)
	if err != nil {
		return nil, err
	}
	months, err := intColumn(df, domain.ColMonth)
	if err != nil {
		return nil, err
	}
	cities := df.Col(domain.ColCity).Records()
	seasons := df.Col(domain.ColSeason).Records()
	health := df.Col(domain.ColHealthCategory).Records()

	all := series.New(aqi, series.Float, domain.ColAQI)
	r := &Report{
		GeneratedAt: domain.Now().UTC(),
		Records:     len(aqi),
		MeanAQI:     all.Mean(),
		MedianAQI:   all.Median(),
	}

	r.Cities = cityStats(cities, aqi)
	for _, g := range rankMeans(groupBy(seasons, aqi)) {
		r.Seasons = append(r.Seasons, GroupMean{Key: g.key, Mean: g.mean})
	}
	for _, g := range rankMeans(groupBy(months, aqi)) {
		r.Months = append(r.Months, MonthMean{Month: g.key, Mean: g.mean})
	}

	r.Health = healthDistribution(health)
	for _, h := range health {
		if h == string(domain.Hazardous) {
			r.HazardousDays++
		}
	}
	r.HazardousPercentage = float64(r.HazardousDays) / float64(r.Records) * 100

	if r.Pollutants, err = pollutantStats(df, aqi); err != nil {
		return nil, err
	}

	if domain.HasColumn(names, domain.ColYear) {
		years, err := intColumn(df, domain.ColYear)
		if err != nil {
			return nil, err
		}
		r.Years, r.Trend = yearlyTrend(years, aqi)
	}

	r.HazardousByCity = hazardousByCity(cities, health)
	r.CitySeason = citySeasonMeans(cities, seasons, aqi)
	return r, nil
}

type group[K cmp.Ordered] struct {
	key  K
	vals []float64
	mean float64
}

// groupBy partitions vals by key. Groups come back in ascending key order.
func groupBy[K cmp.Ordered](keys []K, vals []float64) []group[K] {
	index := make(map[K]int)
	var groups []group[K]
	for i, k := range keys {
		j, ok := index[k]
		if !ok {
			j = len(groups)
			index[k] = j
			groups = append(groups, group[K]{key: k})
		}
		groups[j].vals = append(groups[j].vals, vals[i])
	}
	slices.SortFunc(groups, func(a, b group[K]) int { return cmp.Compare(a.key, b.key) })
	for i := range groups {
		groups[i].mean = stat.Mean(groups[i].vals, nil)
	}
	return groups
}

// rankMeans orders groups by mean descending. The sort is stable, so equal
// means keep ascending key order.
func rankMeans[K cmp.Ordered](groups []group[K]) []group[K] {
	slices.SortStableFunc(groups, func(a, b group[K]) int { return cmp.Compare(b.mean, a.mean) })
	return groups
}

func cityStats(cities []string, aqi []float64) []CityStats {
	groups := rankMeans(groupBy(cities, aqi))
	out := make([]CityStats, len(groups))
	for i, g := range groups {
		s := series.New(g.vals, series.Float, g.key)
		cs := CityStats{
			City:   g.key,
			Count:  len(g.vals),
			Mean:   g.mean,
			Median: s.Median(),
			Min:    s.Min(),
			Max:    s.Max(),
		}
		if len(g.vals) > 1 {
			cs.Std = s.StdDev()
		}
		out[i] = cs
	}
	return out
}

// healthDistribution counts rows per category, most frequent first. Ties
// are broken by severity.
func healthDistribution(health []string) []CategoryCount {
	counts := make(map[string]int)
	var out []CategoryCount
	for _, h := range health {
		if counts[h] == 0 {
			out = append(out, CategoryCount{Category: h})
		}
		counts[h]++
	}
	for i := range out {
		out[i].Count = counts[out[i].Category]
	}
	slices.SortFunc(out, func(a, b CategoryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(severity(a.Category), severity(b.Category)); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}

// severity ranks unknown labels after every known category.
func severity(label string) int {
	if s := domain.HealthCategory(label).Severity(); s >= 0 {
		return s
	}
	return len(domain.HealthCategories)
}

func pollutantStats(df dataframe.DataFrame, aqi []float64) ([]PollutantStats, error) {
	names := df.Names()
	var out []PollutantStats
	for _, p := range domain.Pollutants {
		if !domain.HasColumn(names, p) {
			continue
		}
		vals, err := floatColumn(df, p)
		if err != nil {
			return nil, err
		}
		out = append(out, PollutantStats{
			Name:        p,
			Mean:        stat.Mean(vals, nil),
			Correlation: correlation(aqi, vals),
		})
	}
	return out, nil
}

// correlation returns Pearson's r, or nil when it is undefined.
func correlation(x, y []float64) *float64 {
	if len(x) < 2 || stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return nil
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return nil
	}
	return &r
}

func yearlyTrend(years []int, aqi []float64) ([]YearMean, *Trend) {
	groups := groupBy(years, aqi)
	out := make([]YearMean, len(groups))
	for i, g := range groups {
		out[i] = YearMean{Year: g.key, Mean: g.mean}
	}
	if len(out) < 2 {
		return out, nil
	}
	first, last := out[0], out[len(out)-1]
	return out, &Trend{First: first, Last: last, Improving: last.Mean < first.Mean}
}

// hazardousByCity counts hazardous rows per city, for cities with at least
// one, most first and ties by city name.
func hazardousByCity(cities, health []string) []GroupCount {
	counts := make(map[string]int)
	for i, h := range health {
		if h == string(domain.Hazardous) {
			counts[cities[i]]++
		}
	}
	out := make([]GroupCount, 0, len(counts))
	for city, n := range counts {
		out = append(out, GroupCount{Key: city, Count: n})
	}
	slices.SortFunc(out, func(a, b GroupCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

func citySeasonMeans(cities, seasons []string, aqi []float64) []CitySeasonMean {
	type pair struct{ city, season string }
	index := make(map[pair]int)
	var (
		keys []pair
		vals [][]float64
	)
	for i := range cities {
		k := pair{cities[i], seasons[i]}
		j, ok := index[k]
		if !ok {
			j = len(keys)
			index[k] = j
			keys = append(keys, k)
			vals = append(vals, nil)
		}
		vals[j] = append(vals[j], aqi[i])
	}
	out := make([]CitySeasonMean, len(keys))
	for i, k := range keys {
		out[i] = CitySeasonMean{City: k.city, Season: k.season, Mean: stat.Mean(vals[i], nil)}
	}
	slices.SortFunc(out, func(a, b CitySeasonMean) int {
		if c := cmp.Compare(a.City, b.City); c != 0 {
			return c
		}
		return cmp.Compare(a.Season, b.Season)
	})
	return out
}

func floatColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	recs := df.Col(name).Records()
	out := make([]float64, len(recs))
	for i, v := range recs {
		f, ok := domain.ParseNumber(v)
		if !ok {
			return nil, fmt.Errorf("column %s row %d: %q is not a number", name, i+1, v)
		}
		out[i] = f
	}
	return out, nil
}

func intColumn(df dataframe.DataFrame, name string) ([]int, error) {
	recs := df.Col(name).Records()
	out := make([]int, len(recs))
	for i, v := range recs {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("column %s row %d: %q is not an integer", name, i+1, v)
		}
		out[i] = n
	}
	return out, nil
}

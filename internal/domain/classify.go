package domain

import "time"

// Season is the regional four-season grouping of calendar months.
type Season string

const (
	Winter      Season = "Winter"
	Summer      Season = "Summer"
	Monsoon     Season = "Monsoon"
	PostMonsoon Season = "Post-Monsoon"
)

// Seasons lists every season in calendar order starting from Winter.
var Seasons = []Season{Winter, Summer, Monsoon, PostMonsoon}

// seasonByMonth is indexed by time.Month; index 0 is unused.
var seasonByMonth = [13]Season{
	time.January:   Winter,
	time.February:  Winter,
	time.March:     Summer,
	time.April:     Summer,
	time.May:       Summer,
	time.June:      Monsoon,
	time.July:      Monsoon,
	time.August:    Monsoon,
	time.September: Monsoon,
	time.October:   PostMonsoon,
	time.November:  PostMonsoon,
	time.December:  Winter,
}

// SeasonForMonth returns the season of a calendar month. Months outside
// 1-12 fall in Post-Monsoon.
func SeasonForMonth(month time.Month) Season {
	if month < time.January || month > time.December {
		return PostMonsoon
	}
	return seasonByMonth[month]
}

// HealthCategory is an ordinal AQI severity band.
type HealthCategory string

const (
	Good                        HealthCategory = "Good"
	Moderate                    HealthCategory = "Moderate"
	UnhealthyForSensitiveGroups HealthCategory = "Unhealthy for Sensitive Groups"
	Unhealthy                   HealthCategory = "Unhealthy"
	VeryUnhealthy               HealthCategory = "Very Unhealthy"
	Hazardous                   HealthCategory = "Hazardous"
)

type breakpoint struct {
	upper    float64 // inclusive
	category HealthCategory
}

// healthBreakpoints is ordered by ascending upper bound. Values above the
// last bound are Hazardous.
var healthBreakpoints = []breakpoint{
	{50, Good},
	{100, Moderate},
	{150, UnhealthyForSensitiveGroups},
	{200, Unhealthy},
	{300, VeryUnhealthy},
}

// HealthCategories lists every category from least to most severe.
var HealthCategories = []HealthCategory{
	Good, Moderate, UnhealthyForSensitiveGroups, Unhealthy, VeryUnhealthy, Hazardous,
}

// HealthCategoryForAQI classifies an AQI value. Bounds are inclusive on the
// lower category: 50 is Good, 50.5 is Moderate.
func HealthCategoryForAQI(aqi float64) HealthCategory {
	for _, bp := range healthBreakpoints {
		if aqi <= bp.upper {
			return bp.category
		}
	}
	return Hazardous
}

// Severity returns the 0-based rank of a category, or -1 if unknown.
func (c HealthCategory) Severity() int {
	for i, hc := range HealthCategories {
		if hc == c {
			return i
		}
	}
	return -1
}

// AQI domain bounds, inclusive.
const (
	MinAQI = 0
	MaxAQI = 500
)

// InAQIRange reports whether v lies in [MinAQI, MaxAQI].
func InAQIRange(v float64) bool {
	return v >= MinAQI && v <= MaxAQI
}

package analysis

import "time"

// Report is the full result of analyzing a cleaned table. Every slice is in
// display order.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Records     int       `json:"records"`
	MeanAQI     float64   `json:"mean_aqi"`
	MedianAQI   float64   `json:"median_aqi"`

	Cities  []CityStats `json:"cities"`  // mean descending
	Seasons []GroupMean `json:"seasons"` // mean descending
	Months  []MonthMean `json:"months"`  // mean descending

	Health              []CategoryCount `json:"health_distribution"` // count descending
	HazardousDays       int             `json:"hazardous_days"`
	HazardousPercentage float64         `json:"hazardous_percentage"`

	Pollutants []PollutantStats `json:"pollutants"` // reporting order, present columns only

	Years []YearMean `json:"years,omitempty"` // year ascending
	Trend *Trend     `json:"trend,omitempty"`

	HazardousByCity []GroupCount     `json:"hazardous_by_city"`
	CitySeason      []CitySeasonMean `json:"city_season"` // city, then season ascending
}

// CityStats summarizes the AQI observations of one city. Std is the sample
// standard deviation, 0 for a single observation.
type CityStats struct {
	City   string  `json:"city"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Std    float64 `json:"std"`
}

// GroupMean is the mean AQI of a labelled group.
type GroupMean struct {
	Key  string  `json:"key"`
	Mean float64 `json:"mean"`
}

// MonthMean is the mean AQI of a calendar month.
type MonthMean struct {
	Month int     `json:"month"`
	Mean  float64 `json:"mean"`
}

// YearMean is the mean AQI of a calendar year.
type YearMean struct {
	Year int     `json:"year"`
	Mean float64 `json:"mean"`
}

// Trend compares the earliest and latest years.
type Trend struct {
	First     YearMean `json:"first"`
	Last      YearMean `json:"last"`
	Improving bool     `json:"improving"`
}

// CategoryCount is the number of rows in a health category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// GroupCount is the number of rows in a labelled group.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// PollutantStats is the mean of a pollutant and its Pearson correlation with
// AQI. Correlation is nil when either side has no variance.
type PollutantStats struct {
	Name        string   `json:"name"`
	Mean        float64  `json:"mean"`
	Correlation *float64 `json:"correlation"`
}

// CitySeasonMean is the mean AQI of one (city, season) combination present
// in the data.
type CitySeasonMean struct {
	City   string  `json:"city"`
	Season string  `json:"season"`
	Mean   float64 `json:"mean"`
}

// WorstCity is the city with the highest mean AQI.
func (r *Report) WorstCity() string {
	if len(r.Cities) == 0 {
		return ""
	}
	return r.Cities[0].City
}

// WorstSeason is the season with the highest mean AQI.
func (r *Report) WorstSeason() string {
	if len(r.Seasons) == 0 {
		return ""
	}
	return r.Seasons[0].Key
}

// BestSeason is the season with the lowest mean AQI.
func (r *Report) BestSeason() string {
	if len(r.Seasons) == 0 {
		return ""
	}
	return r.Seasons[len(r.Seasons)-1].Key
}

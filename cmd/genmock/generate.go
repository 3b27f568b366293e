package main

import (
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/prat-1729/aqi-data-visualization/internal/domain"
)

// header uses export-style names that only match the canonical schema after
// normalization.
var header = []string{
	" Date ", "Location", "Air Quality Index",
	"pm2.5 (ug/m3)", "PM10 (ug/m3)", "no2", "SO2", "CO", "Ozone", "Station Notes",
}

var startDate = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

type city struct {
	name string
	base float64 // typical annual AQI
}

var cities = []city{
	{"Delhi", 210},
	{"Kanpur", 180},
	{"Lucknow", 160},
	{"Kolkata", 130},
	{"Mumbai", 95},
	{"Chennai", 75},
	{"Bengaluru", 70},
	{"Shillong", 40},
}

// seasonFactor scales a city's base AQI.
var seasonFactor = map[domain.Season]float64{
	domain.Winter:      1.45,
	domain.Summer:      1.0,
	domain.Monsoon:     0.55,
	domain.PostMonsoon: 1.25,
}

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2006/1/2",
	"2 Jan 2006",
	"2006-01-02 15:04:05",
}

var missingTokens = []string{"", "NA", "N/A", "null", "NaN"}

var notes = []string{"", "auto", "manual", "calibrated"}

const (
	missingAQIRate       = 0.03
	outOfRangeRate       = 0.02
	duplicateRate        = 0.02
	missingPollutantRate = 0.04
)

// counts records what generate injected.
type counts struct {
	rows              int
	missingAQI        int
	outOfRange        int
	duplicates        int
	missingPollutants int
}

// generate returns a header plus n data rows. Rows are deterministic for a
// given seed. Every (city, day) pair appears at most once apart from injected
// duplicates, which copy a clean row exactly.
func generate(n int, seed uint64) ([][]string, counts) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([][]string, 0, n+1)
	out = append(out, header)
	var c counts

	for i := 0; c.rows < n; i++ {
		ct := cities[i%len(cities)]
		day := startDate.AddDate(0, 0, i/len(cities))
		aqi := sampleAQI(rng, ct, day)

		row := make([]string, 0, len(header))
		row = append(row, day.Format(dateLayouts[rng.IntN(len(dateLayouts))]), ct.name)

		anomaly := true
		switch p := rng.Float64(); {
		case p < missingAQIRate:
			row = append(row, missingTokens[rng.IntN(len(missingTokens))])
			c.missingAQI++
		case p < missingAQIRate+outOfRangeRate:
			row = append(row, strconv.Itoa(outOfRangeAQI(rng)))
			c.outOfRange++
		default:
			row = append(row, strconv.Itoa(int(math.Round(aqi))))
			anomaly = false
		}

		for _, v := range pollutants(rng, aqi) {
			if rng.Float64() < missingPollutantRate {
				row = append(row, missingTokens[rng.IntN(len(missingTokens))])
				c.missingPollutants++
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'f', 1, 64))
		}
		row = append(row, notes[rng.IntN(len(notes))])

		out = append(out, row)
		c.rows++

		if !anomaly && c.rows < n && rng.Float64() < duplicateRate {
			out = append(out, append([]string(nil), row...))
			c.rows++
			c.duplicates++
		}
	}
	return out, c
}

func sampleAQI(rng *rand.Rand, ct city, day time.Time) float64 {
	v := ct.base*seasonFactor[domain.SeasonForMonth(day.Month())] + rng.NormFloat64()*ct.base*0.15
	return math.Min(math.Max(v, 5), 495)
}

func outOfRangeAQI(rng *rand.Rand) int {
	if rng.IntN(2) == 0 {
		return -1 - rng.IntN(50)
	}
	return domain.MaxAQI + 1 + rng.IntN(500)
}

// pollutants returns PM2.5, PM10, NO2, SO2, CO and O3 loosely tracking aqi.
func pollutants(rng *rand.Rand, aqi float64) []float64 {
	noise := func(scale float64) float64 { return math.Abs(rng.NormFloat64() * scale) }
	return []float64{
		aqi*0.45 + noise(8),
		aqi*0.8 + noise(15),
		15 + aqi*0.12 + noise(5),
		5 + aqi*0.04 + noise(2),
		0.3 + aqi/250 + noise(0.2),
		25 + noise(12),
	}
}

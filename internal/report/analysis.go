package report

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/prat-1729/aqi-data-visualization/internal/analysis"
)

// Analysis prints the numbered sections of an analysis report.
func (p *Printer) Analysis(r *analysis.Report) error {
	p.titlef("=== EXPLORATORY DATA ANALYSIS ===")
	p.cities(r)
	p.seasons(r)
	p.months(r)
	p.health(r)
	p.pollutants(r)
	p.years(r)
	p.hazardousByCity(r)
	p.citySeason(r)
	return p.Err()
}

func (p *Printer) cities(r *analysis.Report) {
	p.section(1, "CITY-WISE AQI ANALYSIS")
	rows := make([][]string, len(r.Cities))
	for i, c := range r.Cities {
		rows[i] = []string{c.City, f2(c.Mean), f2(c.Median), f2(c.Min), f2(c.Max), f2(c.Std)}
	}
	p.table([]string{"City", "mean", "median", "min", "max", "std"}, rows)
	if len(r.Cities) > 0 {
		p.printf("City with worst average AQI: %s\n", r.WorstCity())
		p.printf("Average AQI: %s\n", f2(r.Cities[0].Mean))
	}
	p.printf("\n")
}

func (p *Printer) seasons(r *analysis.Report) {
	p.section(2, "SEASONAL ANALYSIS")
	p.printf("Average AQI by season:\n")
	rows := make([][]string, len(r.Seasons))
	for i, s := range r.Seasons {
		rows[i] = []string{s.Key, f2(s.Mean)}
	}
	p.table([]string{"Season", "AQI"}, rows)
	p.printf("Worst season for air quality: %s\n", r.WorstSeason())
	p.printf("Best season for air quality: %s\n\n", r.BestSeason())
}

func (p *Printer) months(r *analysis.Report) {
	p.section(3, "MONTHLY TRENDS")
	p.printf("Average AQI by month:\n")
	for _, m := range r.Months {
		p.printf("Month %d: %s\n", m.Month, f2(m.Mean))
	}
	p.printf("\n")
}

func (p *Printer) health(r *analysis.Report) {
	p.section(4, "HEALTH CATEGORY DISTRIBUTION")
	rows := make([][]string, len(r.Health))
	for i, h := range r.Health {
		rows[i] = []string{h.Category, strconv.Itoa(h.Count)}
	}
	p.table([]string{"Health_Category", "count"}, rows)
	p.printf("Percentage of hazardous days: %s%%\n\n", f2(r.HazardousPercentage))
}

func (p *Printer) pollutants(r *analysis.Report) {
	p.section(5, "POLLUTANT ANALYSIS")
	if len(r.Pollutants) == 0 {
		p.printf("%s\n\n", p.muted.Render("No pollutant columns in this dataset."))
		return
	}
	names := make([]string, len(r.Pollutants))
	for i, ps := range r.Pollutants {
		names[i] = ps.Name
	}
	p.printf("Available pollutants: %v\n\n", names)

	p.printf("Average pollutant levels:\n")
	for _, ps := range r.Pollutants {
		p.printf("%s: %s\n", ps.Name, f2(ps.Mean))
	}
	p.printf("Correlation with AQI:\n")
	for _, ps := range r.Pollutants {
		corr := p.muted.Render("undefined")
		if ps.Correlation != nil {
			corr = fmt.Sprintf("%.3f", *ps.Correlation)
		}
		p.printf("%s: %s\n", ps.Name, corr)
	}
	p.printf("\n")
}

func (p *Printer) years(r *analysis.Report) {
	p.section(6, "YEAR-OVER-YEAR TRENDS")
	if len(r.Years) == 0 {
		p.printf("%s\n\n", p.muted.Render("No Year column in this dataset."))
		return
	}
	p.printf("Average AQI by year:\n")
	rows := make([][]string, len(r.Years))
	for i, y := range r.Years {
		rows[i] = []string{strconv.Itoa(y.Year), f2(y.Mean)}
	}
	p.table([]string{"Year", "AQI"}, rows)
	if t := r.Trend; t != nil {
		verdict := "WORSENING"
		if t.Improving {
			verdict = "IMPROVING"
		}
		p.printf("Air quality is %s (from %s to %s)\n", verdict, f2(t.First.Mean), f2(t.Last.Mean))
	}
	p.printf("\n")
}

func (p *Printer) hazardousByCity(r *analysis.Report) {
	p.section(7, "HAZARDOUS DAYS BY CITY")
	p.printf("Number of hazardous days per city:\n")
	if len(r.HazardousByCity) == 0 {
		p.printf("%s\n\n", p.muted.Render("none"))
		return
	}
	rows := make([][]string, len(r.HazardousByCity))
	for i, g := range r.HazardousByCity {
		rows[i] = []string{g.Key, strconv.Itoa(g.Count)}
	}
	p.table([]string{"City", "days"}, rows)
	p.printf("\n")
}

// citySeason prints a city by season grid. Combinations absent from the
// data are shown as "-".
func (p *Printer) citySeason(r *analysis.Report) {
	p.section(8, "CITY-SEASON ANALYSIS")
	p.printf("Average AQI by City and Season:\n")

	var cities, seasons []string
	means := make(map[[2]string]float64, len(r.CitySeason))
	for _, cs := range r.CitySeason {
		if !slices.Contains(cities, cs.City) {
			cities = append(cities, cs.City)
		}
		if !slices.Contains(seasons, cs.Season) {
			seasons = append(seasons, cs.Season)
		}
		means[[2]string{cs.City, cs.Season}] = cs.Mean
	}
	slices.Sort(seasons)

	rows := make([][]string, len(cities))
	for i, city := range cities {
		row := []string{city}
		for _, season := range seasons {
			cell := "-"
			if m, ok := means[[2]string{city, season}]; ok {
				cell = f2(m)
			}
			row = append(row, cell)
		}
		rows[i] = row
	}
	p.table(append([]string{"City"}, seasons...), rows)
	p.printf("\n")
}

package cost

// ReferenceIndex is the CEPCI value of the correlations' cost-basis year.
// Every purchased cost leaves the correlation at this index and is escalated
// to the run's target index.
const ReferenceIndex = 567.5

// cepciByYear is the published Chemical Engineering Plant Cost Index series
// the `indices` command and year-based configuration resolve against. The
// last two entries are projections.
var cepciByYear = map[int]float64{
	2017: 567.5,
	2018: 603.1,
	2019: 607.5,
	2020: 596.2,
	2021: 708.0,
	2022: 778.8,
	2023: 789.6,
	2024: 800.0,
	2025: 810.0,
}

// IndexForYear returns the CEPCI value for a year.
func IndexForYear(year int) (float64, bool) {
	v, ok := cepciByYear[year]
	return v, ok
}

// IndexYears returns every year the index table covers, ascending.
func IndexYears() []int {
	years := make([]int, 0, len(cepciByYear))
	for y := 2017; y <= 2025; y++ {
		if _, ok := cepciByYear[y]; ok {
			years = append(years, y)
		}
	}
	return years
}

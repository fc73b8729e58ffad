package models

// CityDemographics is one row of the city-level demographic dataset. The
// ratio is derived from the population counts at load time and stays unknown
// when the counts cannot support it.
type CityDemographics struct {
	City            string `json:"city"`
	State           string `json:"state"`
	TotalPopulation int    `json:"total_population"`
	BlackPopulation int    `json:"black_population"`
	Ratio           Ratio  `json:"black_population_ratio"`
}

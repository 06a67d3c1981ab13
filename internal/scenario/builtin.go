package scenario

import "github.com/appengine-ltd/hydrostress/internal/envstress"

const (
	SteadyOptimalID      ID = "steady_optimal"
	HeatAcclimationID    ID = "heat_acclimation"
	HeatDamageID         ID = "heat_damage_recovery"
	MixedStressID        ID = "mixed_stress"
	WaterHeatSynergyID   ID = "water_heat_synergy"
	ColdSnapID           ID = "cold_snap"
	FrostID              ID = "frost_night"
	NutrientRecoveryID   ID = "nutrient_recovery"
	RootZoneHeatID       ID = "root_zone_heat"
	VariableGreenhouseID ID = "variable_greenhouse"
)

func BuiltIn() []Scenario {
	f := func(v float64) *float64 { return &v }
	hold := func(days int, temp float64, levels map[string]float64) Segment {
		return Segment{Days: days, TemperatureC: f(temp), Levels: levels}
	}

	return []Scenario{
		{
			ID: SteadyOptimalID, Name: "Steady optimal",
			Description: "Ten days inside the optimal band.",
			Segments:    []Segment{hold(10, 22, nil)},
		},
		{
			ID: HeatAcclimationID, Name: "Heat acclimation",
			Description: "Two weeks at the severe heat threshold.",
			Segments:    []Segment{hold(14, 35, nil)},
		},
		{
			ID: HeatDamageID, Name: "Heat damage and recovery",
			Description: "Fifteen days near lethal heat, then ten optimal days.",
			Segments:    []Segment{hold(15, 43, nil), hold(10, 22, nil)},
		},
		{
			ID: MixedStressID, Name: "Mixed stress",
			Description: "Warm air with water, nutrient, light, oxygen and pH all below optimal.",
			Segments: []Segment{hold(7, 30, map[string]float64{
				"water": 0.5, "nutrient": 0.7, "light": 0.8,
				"salinity": 1.0, "oxygen": 0.9, "ph": 0.9,
			})},
		},
		{
			ID: WaterHeatSynergyID, Name: "Water and heat synergy",
			Description: "Drought stress under heat.",
			Segments:    []Segment{hold(7, 36, map[string]float64{"water": 0.5})},
		},
		{
			ID: ColdSnapID, Name: "Cold snap",
			Description: "Four cold days between optimal spells.",
			Segments:    []Segment{hold(5, 21, nil), hold(4, 8, nil), hold(5, 21, nil)},
		},
		{
			ID: FrostID, Name: "Frost night",
			Description: "A night of frost exposure followed by recovery.",
			Segments: []Segment{
				hold(3, 20, nil),
				{Days: 1, TemperatureC: f(-4), Hours: 8},
				hold(7, 20, nil),
			},
		},
		{
			ID: NutrientRecoveryID, Name: "Nutrient recovery",
			Description: "Nitrate deficiency corrected after ten days.",
			Segments: []Segment{
				{Days: 10, TemperatureC: f(21), Readings: readings(40)},
				{Days: 10, TemperatureC: f(21), Readings: readings(200)},
			},
		},
		{
			ID: RootZoneHeatID, Name: "Root zone heat",
			Description: "Comfortable air over a warm nutrient solution.",
			Segments: []Segment{{Days: 10, TemperatureC: f(22), RootTempC: f(29)}},
		},
		{
			ID: VariableGreenhouseID, Name: "Variable greenhouse",
			Description: "Warm weeks with daily noise in temperature and levels.",
			Jitter:      Jitter{TemperatureC: 3, Level: 0.05},
			Segments: []Segment{
				hold(14, 26, map[string]float64{"water": 0.85, "light": 0.75}),
				hold(7, 31, map[string]float64{"water": 0.7, "light": 0.9}),
			},
		},
	}
}

func readings(nitrate float64) envstress.Readings {
	return envstress.Readings{Nitrate: &nitrate}
}

// BuiltInCatalogue indexes BuiltIn.
func BuiltInCatalogue() (*Catalogue, error) {
	return NewCatalogue(BuiltIn()...)
}

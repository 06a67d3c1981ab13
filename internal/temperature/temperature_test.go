package temperature

import (
	"math"
	"testing"

	"github.com/appengine-ltd/hydrostress/internal/config"
)

func newTestModel() *Model {
	return NewModel(config.DefaultTemperatureParams(), nil)
}

func TestClassifyZones(t *testing.T) {
	p := config.DefaultTemperatureParams()
	tests := []struct {
		temp float64
		want Zone
	}{
		{temp: 18, want: ZoneOptimal},
		{temp: 24, want: ZoneOptimal},
		{temp: 24.1, want: ZoneHeat},
		{temp: 50, want: ZoneHeat},
		{temp: 17.9, want: ZoneCold},
		{temp: -1, want: ZoneCold},
		{temp: -1.5, want: ZoneFrost},
	}
	for _, tc := range tests {
		if got := Classify(p, tc.temp); got != tc.want {
			t.Fatalf("Classify(%v)=%s want=%s", tc.temp, got, tc.want)
		}
	}
}

func TestBaseStressBreakpoints(t *testing.T) {
	p := config.DefaultTemperatureParams()
	tests := []struct {
		temp float64
		want float64
	}{
		{temp: 22, want: 0},
		{temp: 26, want: 0.15},
		{temp: 28, want: 0.3},
		{temp: 35, want: 0.7},
		{temp: 40, want: 0.85},
		{temp: 60, want: 1.0},
		{temp: 15, want: 0.1},
		{temp: 12, want: 0.2},
		{temp: 5, want: 0.5},
		{temp: -1, want: 0.8},
		{temp: -3.5, want: 0.9},
		{temp: -20, want: 1.0},
	}
	for _, tc := range tests {
		got := BaseStress(p, tc.temp, Classify(p, tc.temp))
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("BaseStress(%v)=%v want=%v", tc.temp, got, tc.want)
		}
	}
}

func TestBaseStressIsPureAndMonotonic(t *testing.T) {
	p := config.DefaultTemperatureParams()

	prev := 0.0
	for temp := p.OptimalMax; temp <= 60; temp += 0.25 {
		z := Classify(p, temp)
		got := BaseStress(p, temp, z)
		if again := BaseStress(p, temp, Classify(p, temp)); again != got {
			t.Fatalf("expected identical result for %v, got %v and %v", temp, got, again)
		}
		if got < prev {
			t.Fatalf("expected heat stress non-decreasing at %v: %v < %v", temp, got, prev)
		}
		prev = got
	}

	prev = 0.0
	for temp := p.OptimalMin; temp >= -50; temp -= 0.25 {
		got := BaseStress(p, temp, Classify(p, temp))
		if got < prev {
			t.Fatalf("expected cold stress non-decreasing at %v: %v < %v", temp, got, prev)
		}
		if got < 0 || got > 1 {
			t.Fatalf("stress %v out of range at %v", got, temp)
		}
		prev = got
	}
}

func TestScenarioOptimalHoldsNoStress(t *testing.T) {
	m := newTestModel()
	for day := 1; day <= 10; day++ {
		r := m.DailyUpdate(22, 24)
		if r.Zone != ZoneOptimal {
			t.Fatalf("day %d: expected optimal zone, got %s", day, r.Zone)
		}
		if r.StressLevel != 0 {
			t.Fatalf("day %d: expected zero stress, got %v", day, r.StressLevel)
		}
		if r.Factors.Overall != 1 {
			t.Fatalf("day %d: expected overall 1, got %v", day, r.Factors.Overall)
		}
		if r.TemperatureDeviation != 0 || r.MemoryEffect != 0 {
			t.Fatalf("day %d: expected no deviation or memory, got %+v", day, r)
		}
	}
}

func TestOptimalDaysDecayAcclimation(t *testing.T) {
	m := newTestModel()
	for day := 0; day < 10; day++ {
		m.DailyUpdate(32, 24)
	}
	heat := m.Summary().HeatAcclimation
	if heat <= 0 {
		t.Fatalf("expected heat acclimation after hot days, got %v", heat)
	}
	for day := 1; day <= 10; day++ {
		r := m.DailyUpdate(22, 24)
		if r.StressLevel != 0 {
			t.Fatalf("day %d: expected zero stress in the optimal band, got %v", day, r.StressLevel)
		}
		if r.Acclimation.Heat >= heat {
			t.Fatalf("day %d: expected heat acclimation to decay below %v, got %v", day, heat, r.Acclimation.Heat)
		}
		heat = r.Acclimation.Heat
	}
}

func TestScenarioSustainedHeatAcclimates(t *testing.T) {
	m := newTestModel()
	var first, last Response
	maxStress := 0.0
	prevAcc := 0.0
	for day := 1; day <= 14; day++ {
		r := m.DailyUpdate(35, 24)
		if day == 1 {
			first = r
		}
		last = r
		if r.Acclimation.Heat <= prevAcc {
			t.Fatalf("day %d: expected heat acclimation to rise above %v, got %v", day, prevAcc, r.Acclimation.Heat)
		}
		prevAcc = r.Acclimation.Heat
		maxStress = math.Max(maxStress, r.StressLevel)
	}
	if maxStress <= first.StressLevel {
		t.Fatalf("expected stress to rise after day 1 (%v), max %v", first.StressLevel, maxStress)
	}
	if last.Factors.Overall <= first.Factors.Overall {
		t.Fatalf("expected day-14 overall %v > day-1 overall %v", last.Factors.Overall, first.Factors.Overall)
	}
	if math.Abs(first.Factors.Overall-0.442625) > 1e-9 {
		t.Fatalf("expected day-1 overall 0.442625, got %v", first.Factors.Overall)
	}
}

func TestScenarioHeatDamageRecovers(t *testing.T) {
	m := newTestModel()
	var r Response
	for day := 0; day < 15; day++ {
		r = m.DailyUpdate(43, 24)
	}
	if r.Damage.Heat <= 0 {
		t.Fatalf("expected heat damage after 15 days at 43C, got %v", r.Damage.Heat)
	}
	if r.Damage.RecoveryRate != config.DefaultTemperatureParams().RecoveryRateHeat {
		t.Fatalf("expected heat recovery rate, got %v", r.Damage.RecoveryRate)
	}
	prev := r.Damage.Heat
	for day := 1; day <= 10; day++ {
		r = m.DailyUpdate(22, 24)
		if r.Damage.Heat > prev {
			t.Fatalf("day %d: expected heat damage non-increasing, %v > %v", day, r.Damage.Heat, prev)
		}
		prev = r.Damage.Heat
	}
	if prev != 0 {
		t.Fatalf("expected heat damage to recover fully, got %v", prev)
	}
}

func TestDamageDiscountsFactorsNextDay(t *testing.T) {
	m := newTestModel()
	for day := 0; day < 15; day++ {
		m.DailyUpdate(43, 24)
	}
	damage := m.Summary().HeatDamage
	r := m.DailyUpdate(22, 24)
	want := 1 - damage*0.5
	if math.Abs(r.Factors.Overall-want) > 1e-12 {
		t.Fatalf("expected discounted overall %v, got %v", want, r.Factors.Overall)
	}
	if r.Factors.Respiration != 1 {
		t.Fatalf("expected respiration undiscounted, got %v", r.Factors.Respiration)
	}
}

func TestFrostDamagePerHour(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{hours: 24, want: 0.2},
		{hours: 6, want: 0.05},
		{hours: 0, want: 0.2},
	}
	for _, tc := range tests {
		m := newTestModel()
		r := m.DailyUpdate(-5, tc.hours)
		if r.Zone != ZoneFrost {
			t.Fatalf("expected frost zone, got %s", r.Zone)
		}
		if math.Abs(r.Damage.Frost-tc.want) > 1e-12 {
			t.Fatalf("hours=%v: expected frost damage %v, got %v", tc.hours, tc.want, r.Damage.Frost)
		}
	}
}

func TestOppositeStressDecaysAcclimation(t *testing.T) {
	m := newTestModel()
	for day := 0; day < 5; day++ {
		m.DailyUpdate(8, 24)
	}
	cold := m.Summary().ColdAcclimation
	if cold <= 0 {
		t.Fatalf("expected cold acclimation, got %v", cold)
	}
	r := m.DailyUpdate(30, 24)
	if r.Acclimation.Cold >= cold {
		t.Fatalf("expected cold acclimation to decay under heat, %v >= %v", r.Acclimation.Cold, cold)
	}
	if r.Acclimation.Heat <= 0 {
		t.Fatalf("expected heat acclimation to start, got %v", r.Acclimation.Heat)
	}
}

func TestAcclimationHistoryIsBounded(t *testing.T) {
	m := newTestModel()
	var r Response
	for day := 0; day < 30; day++ {
		r = m.DailyUpdate(float64(20+day%5), 24)
	}
	if len(r.Acclimation.History) != m.Params().MaxAcclimationDays {
		t.Fatalf("expected %d history entries, got %d", m.Params().MaxAcclimationDays, len(r.Acclimation.History))
	}
	if s := m.Summary(); s.HistoryLength != m.Params().StressMemoryDuration {
		t.Fatalf("expected stress history %d, got %d", m.Params().StressMemoryDuration, s.HistoryLength)
	}
}

func TestStressDurationTracksSteadyTemperature(t *testing.T) {
	m := newTestModel()
	steps := []struct {
		temp float64
		want float64
	}{
		{temp: 30, want: 24},
		{temp: 31, want: 48},
		{temp: 31.5, want: 72},
		{temp: 36, want: 24},
	}
	for i, s := range steps {
		r := m.DailyUpdate(s.temp, 24)
		if r.StressDuration != s.want {
			t.Fatalf("step %d: expected duration %v, got %v", i, s.want, r.StressDuration)
		}
	}
}

func TestDeviation(t *testing.T) {
	p := config.DefaultTemperatureParams()
	if got := Deviation(p, 30, ZoneHeat); got != 6 {
		t.Fatalf("expected heat deviation 6, got %v", got)
	}
	if got := Deviation(p, 10, ZoneCold); got != 8 {
		t.Fatalf("expected cold deviation 8, got %v", got)
	}
	if got := Deviation(p, 20, ZoneOptimal); got != 0 {
		t.Fatalf("expected zero deviation, got %v", got)
	}
}

func TestSummaryAverageRecentStress(t *testing.T) {
	m := newTestModel()
	r := m.DailyUpdate(35, 24)
	s := m.Summary()
	want := r.StressLevel / 7
	if math.Abs(s.AverageRecentStress-want) > 1e-12 {
		t.Fatalf("expected average %v, got %v", want, s.AverageRecentStress)
	}
	if s.StressDurationHours != 24 || s.HistoryLength != 1 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

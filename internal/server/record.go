package server

import (
	"fmt"
	"math"

	"github.com/workline/absenteeism/internal/schema"
)

// Record is a single prediction input matching the 19-feature schema.
// Fields are pointers so a missing field is distinguishable from zero.
type Record struct {
	ReasonForAbsence            *float64 `json:"reason_for_absence"`
	MonthOfAbsence              *float64 `json:"month_of_absence"`
	DayOfTheWeek                *float64 `json:"day_of_the_week"`
	Seasons                     *float64 `json:"seasons"`
	TransportationExpense       *float64 `json:"transportation_expense"`
	DistanceFromResidenceToWork *float64 `json:"distance_from_residence_to_work"`
	ServiceTime                 *float64 `json:"service_time"`
	Age                         *float64 `json:"age"`
	WorkLoadAveragePerDay       *float64 `json:"work_load_average_per_day"`
	HitTarget                   *float64 `json:"hit_target"`
	DisciplinaryFailure         *float64 `json:"disciplinary_failure"`
	Education                   *float64 `json:"education"`
	Son                         *float64 `json:"son"`
	SocialDrinker               *float64 `json:"social_drinker"`
	SocialSmoker                *float64 `json:"social_smoker"`
	Pet                         *float64 `json:"pet"`
	Weight                      *float64 `json:"weight"`
	Height                      *float64 `json:"height"`
	BodyMassIndex               *float64 `json:"body_mass_index"`
}

type field struct {
	name   string // json field name, used in validation messages
	column string // schema column the value feeds
	value  *float64
}

func (r *Record) fields() []field {
	return []field{
		{"reason_for_absence", schema.Reason, r.ReasonForAbsence},
		{"month_of_absence", schema.Month, r.MonthOfAbsence},
		{"day_of_the_week", schema.Day, r.DayOfTheWeek},
		{"seasons", schema.Seasons, r.Seasons},
		{"transportation_expense", schema.Transportation, r.TransportationExpense},
		{"distance_from_residence_to_work", schema.Distance, r.DistanceFromResidenceToWork},
		{"service_time", schema.ServiceTime, r.ServiceTime},
		{"age", schema.Age, r.Age},
		{"work_load_average_per_day", schema.WorkLoad, r.WorkLoadAveragePerDay},
		{"hit_target", schema.HitTarget, r.HitTarget},
		{"disciplinary_failure", schema.Disciplinary, r.DisciplinaryFailure},
		{"education", schema.Education, r.Education},
		{"son", schema.Son, r.Son},
		{"social_drinker", schema.Drinker, r.SocialDrinker},
		{"social_smoker", schema.Smoker, r.SocialSmoker},
		{"pet", schema.Pet, r.Pet},
		{"weight", schema.Weight, r.Weight},
		{"height", schema.Height, r.Height},
		{"body_mass_index", schema.BodyMassIndex, r.BodyMassIndex},
	}
}

// Validate range-checks every field against the schema: categorical codes
// must be integers inside their declared domain, numeric fields must be
// non-negative, and hit_target is a percentage.
func (r *Record) Validate() error {
	for _, f := range r.fields() {
		if f.value == nil {
			return fmt.Errorf("field '%s' is required", f.name)
		}
		v := *f.value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("field '%s' must be a finite number", f.name)
		}
		if domain, ok := schema.Domains[f.column]; ok {
			if v != math.Trunc(v) {
				return fmt.Errorf("field '%s' must be an integer code", f.name)
			}
			if !domain.Contains(v) {
				return fmt.Errorf("field '%s' must be between %d and %d", f.name, domain.Lo, domain.Hi)
			}
			continue
		}
		if v < 0 {
			return fmt.Errorf("field '%s' must be non-negative", f.name)
		}
		if f.column == schema.HitTarget && v > 100 {
			return fmt.Errorf("field '%s' must be between 0 and 100", f.name)
		}
	}
	return nil
}

// Row lays the record out in the given feature column order.
func (r *Record) Row(columns []string) ([]float64, error) {
	byColumn := make(map[string]float64, len(columns))
	for _, f := range r.fields() {
		if f.value != nil {
			byColumn[f.column] = *f.value
		}
	}
	row := make([]float64, len(columns))
	for j, name := range columns {
		v, ok := byColumn[name]
		if !ok {
			return nil, fmt.Errorf("model expects column '%s' which the record does not carry", name)
		}
		row[j] = v
	}
	return row, nil
}

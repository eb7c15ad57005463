package schema

// Column names of the raw absenteeism dataset.
const (
	ID             = "ID"
	MixedTypeCol   = "mixed_type_col"
	Reason         = "Reason for absence"
	Month          = "Month of absence"
	Day            = "Day of the week"
	Seasons        = "Seasons"
	Transportation = "Transportation expense"
	Distance       = "Distance from Residence to Work"
	ServiceTime    = "Service time"
	Age            = "Age"
	WorkLoad       = "Work load Average/day"
	HitTarget      = "Hit target"
	Disciplinary   = "Disciplinary failure"
	Education      = "Education"
	Son            = "Son"
	Drinker        = "Social drinker"
	Smoker         = "Social smoker"
	Pet            = "Pet"
	Weight         = "Weight"
	Height         = "Height"
	BodyMassIndex  = "Body mass index"
	Target         = "Absenteeism time in hours"
)

// FeatureColumns lists the 19 feature columns in dataset order.
var FeatureColumns = []string{
	Reason, Month, Day, Seasons,
	Transportation, Distance, ServiceTime, Age, WorkLoad, HitTarget,
	Disciplinary, Education, Son, Drinker, Smoker, Pet,
	Weight, Height, BodyMassIndex,
}

// Domain is the allowed integer range of a categorical column.
// Default is the replacement used when a column holds no in-domain
// values at all, so mode computation can never fail.
type Domain struct {
	Lo      int
	Hi      int
	Default int
}

// Contains reports whether v is an allowed code for the domain.
func (d Domain) Contains(v float64) bool {
	return v >= float64(d.Lo) && v <= float64(d.Hi)
}

// Domains maps each categorical column to its allowed code range.
var Domains = map[string]Domain{
	Reason:       {Lo: 0, Hi: 28, Default: 0},
	Month:        {Lo: 0, Hi: 12, Default: 0},
	Day:          {Lo: 2, Hi: 6, Default: 2},
	Seasons:      {Lo: 1, Hi: 4, Default: 1},
	Education:    {Lo: 1, Hi: 4, Default: 1},
	Disciplinary: {Lo: 0, Hi: 1, Default: 0},
	Drinker:      {Lo: 0, Hi: 1, Default: 0},
	Smoker:       {Lo: 0, Hi: 1, Default: 0},
}

// CategoricalColumns is the order in which domain repair visits columns.
var CategoricalColumns = []string{
	Reason, Month, Day, Seasons, Education, Disciplinary, Drinker, Smoker,
}

// OutlierColumns are winsorized with the IQR rule, target included.
var OutlierColumns = []string{
	Transportation, Distance, ServiceTime, Age, WorkLoad, HitTarget,
	Son, Pet, Weight, Height, BodyMassIndex, Target,
}

// ModelCategorical lists the columns one-hot encoded during training,
// regardless of their integer representation.
var ModelCategorical = []string{
	Reason, Month, Day, Seasons, Education, Disciplinary, Drinker, Smoker,
}

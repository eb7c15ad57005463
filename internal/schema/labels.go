package schema

import "strconv"

// Labels maps categorical codes to their human-readable names, used for
// plot captions and introspection. Codes without an entry render as the
// bare number.
var Labels = map[string]map[int]string{
	Reason: {
		0:  "Unknown",
		1:  "Certain infectious and parasitic diseases",
		2:  "Neoplasms",
		3:  "Blood and immune disorders",
		4:  "Endocrine disorders",
		5:  "Mental disorders",
		6:  "Nervous system diseases",
		7:  "Eye diseases",
		8:  "Ear diseases",
		9:  "Circulatory system diseases",
		10: "Respiratory system diseases",
		11: "Digestive system diseases",
		12: "Skin diseases",
		13: "Musculoskeletal diseases",
		14: "Genitourinary diseases",
		15: "Pregnancy and childbirth",
		16: "Perinatal conditions",
		17: "Congenital anomalies",
		18: "Symptoms and signs",
		19: "Injuries and poisoning",
		20: "External causes",
		21: "Health services contact",
		22: "Patient follow-up",
		23: "Medical consultation",
		24: "Blood donation",
		25: "Lab examination",
		26: "Unjustified absence",
		27: "Physiotherapy",
		28: "Dental consultation",
	},
	Month: {
		0: "Unknown", 1: "January", 2: "February", 3: "March", 4: "April",
		5: "May", 6: "June", 7: "July", 8: "August",
		9: "September", 10: "October", 11: "November", 12: "December",
	},
	Day: {
		2: "Monday", 3: "Tuesday", 4: "Wednesday", 5: "Thursday", 6: "Friday",
	},
	Seasons: {
		1: "Winter", 2: "Spring", 3: "Summer", 4: "Fall",
	},
	Education: {
		1: "High School", 2: "Graduate", 3: "Postgraduate", 4: "Master and Doctor",
	},
	Disciplinary: yesNo,
	Drinker:      yesNo,
	Smoker:       yesNo,
}

var yesNo = map[int]string{0: "No", 1: "Yes"}

// Label resolves a categorical code to its name. Unlabeled columns and
// unknown codes fall back to the numeric code.
func Label(column string, code int) string {
	if labels, ok := Labels[column]; ok {
		if name, ok := labels[code]; ok {
			return name
		}
	}
	return strconv.Itoa(code)
}

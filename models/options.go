package models

// OptionSets carries the enumerated option lists the admission forms are
// validated against. These are configuration data consumed as-is; the
// engine never computes them.
type OptionSets struct {
	Genders        []string `json:"genders"`
	Occupations    []string `json:"occupations"`
	InsuranceTypes []string `json:"insuranceTypes"`
	Statuses       []string `json:"statuses"`
	Departments    []string `json:"departments"`
}

// DefaultOptionSets mirrors the hospital's stock configuration and is
// used when no override is supplied at startup
func DefaultOptionSets() OptionSets {
	return OptionSets{
		Genders:     []string{"male", "female", "other"},
		Occupations: []string{"employed", "self-employed", "student", "homemaker", "retired", "unemployed"},
		InsuranceTypes: []string{
			"none", "cghs", "esic", "private", "ayushman-bharat", "corporate",
		},
		Statuses: []string{"admitted", "under-observation", "critical", "stable", "discharged"},
		Departments: []string{
			"general-medicine", "general-surgery", "cardiology", "neurology",
			"orthopedics", "gynecology", "pediatrics", "oncology",
		},
	}
}

// Contains reports whether v is one of the configured options
func Contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

package models

// WardType enumerates the ward categories a hospital can register
type WardType string

// The closed set of ward types consumed from the hospital configuration
const (
	WardGeneral     WardType = "general"
	WardSemiPrivate WardType = "semi-private"
	WardPrivate     WardType = "private"
	WardICU         WardType = "icu"
	WardICCU        WardType = "iccu"
	WardMaternity   WardType = "maternity"
)

// Facility is an amenity tag attached to a specific bed within a ward
type Facility string

// Bed facility tags seeded from the ward configuration
const (
	FacilityOxygen     Facility = "oxygen"
	FacilityVentilator Facility = "ventilator"
	FacilityMonitor    Facility = "monitor"
	FacilityAC         Facility = "ac"
	FacilityTV         Facility = "tv"
	FacilityAttendant  Facility = "attendant-cot"
)

// Ward holds the structure for a single ward as registered in the
// hospital's ward configuration. TotalBeds is fixed at registration.
type Ward struct {
	Type          WardType           `json:"wardType" bson:"wardType"`
	Number        string             `json:"wardNumber" bson:"wardNumber"`
	TotalBeds     int                `json:"totalBeds" bson:"totalBeds"`
	BedFacilities map[int][]Facility `json:"bedFacilities,omitempty" bson:"bedFacilities,omitempty"`
}

// BedState is the occupancy state of a single bed
type BedState string

// A bed is exactly one of these at any instant. Held is a tentative,
// lease-bounded claim taken during the admission wizard; Occupied is a
// committed admission.
const (
	BedAvailable        BedState = "available"
	BedHeld             BedState = "held"
	BedOccupied         BedState = "occupied"
	BedUnderMaintenance BedState = "maintenance"
)

// BedStatus is the per-bed entry of a ward availability snapshot
type BedStatus struct {
	Number     int        `json:"bedNumber"`
	State      BedState   `json:"state"`
	HolderID   string     `json:"holderId,omitempty"`
	Facilities []Facility `json:"facilities,omitempty"`
}

// WardAvailability is a consistent snapshot of one ward's occupancy.
// Held beds are counted under Occupied so that
// Available+Occupied+Maintenance always equals TotalBeds.
type WardAvailability struct {
	WardType    WardType          `json:"wardType"`
	WardNumber  string            `json:"wardNumber"`
	TotalBeds   int               `json:"totalBeds"`
	Available   int               `json:"available"`
	Occupied    int               `json:"occupied"`
	Maintenance int               `json:"maintenance"`
	Beds        map[int]BedStatus `json:"perBed"`
}

// FreeBedNumbers returns the available bed numbers in ascending order
func (w WardAvailability) FreeBedNumbers() []int {
	var free []int
	for n := 1; n <= w.TotalBeds; n++ {
		if b, ok := w.Beds[n]; ok && b.State == BedAvailable {
			free = append(free, n)
		}
	}
	return free
}

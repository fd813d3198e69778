package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admission holds the structure for the admissions collection in mongo
type Admission struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details AdmissionRecord    `json:"admission" bson:"admission"`
	Version int32              `json:"__v" bson:"__v"`
}

// AdmissionRecord holds the inner admission structure as defined in the
// admissions collection in mongo. Immutable after finalize except for
// Status and DischargeDate.
type AdmissionRecord struct {
	PatientID  string   `json:"patientID" bson:"patientID"`
	WardType   WardType `json:"wardType" bson:"wardType"`
	WardNumber string   `json:"wardNumber" bson:"wardNumber"`
	BedNumber  int      `json:"bedNumber" bson:"bedNumber"`

	AdmissionDate string `json:"admissionDate" bson:"admissionDate"`
	AdmissionTime string `json:"admissionTime" bson:"admissionTime"`
	Status        string `json:"status" bson:"status"`
	Department    string `json:"department" bson:"department"`
	InsuranceType string `json:"insuranceType" bson:"insuranceType"`

	SurgeryRequired bool   `json:"surgeryRequired" bson:"surgeryRequired"`
	DischargeDate   string `json:"dischargeDate,omitempty" bson:"dischargeDate,omitempty"`
	Diagnosis       string `json:"diagnosis" bson:"diagnosis"`
	Reason          string `json:"reason" bson:"reason"`

	// RequestID is the wizard's reservation id; one admission per request
	RequestID string `json:"requestID" bson:"requestID"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// AdmissionDetails carries the raw step-4 form fields before validation
type AdmissionDetails struct {
	AdmissionDate   string `json:"admissionDate"`
	AdmissionTime   string `json:"admissionTime"`
	Status          string `json:"status"`
	Department      string `json:"department"`
	InsuranceType   string `json:"insuranceType"`
	SurgeryRequired bool   `json:"surgeryRequired"`
	DischargeDate   string `json:"dischargeDate"`
	Diagnosis       string `json:"diagnosis"`
	Reason          string `json:"reason"`
}

// WardSelection is the step-2 choice of the admission wizard
type WardSelection struct {
	WardType   WardType `json:"wardType"`
	WardNumber string   `json:"wardNumber"`
}

// AdmissionRequest is the in-progress wizard draft. It is owned
// exclusively by one wizard instance and mutated only through the typed
// step submissions.
type AdmissionRequest struct {
	Patient          PatientDraft     `json:"patient"`
	WardSelection    WardSelection    `json:"wardSelection"`
	BedNumber        int              `json:"bedNumber"`
	AdmissionDetails AdmissionDetails `json:"admissionDetails"`
	PersistedPatient string           `json:"persistedPatientId"`
	SeededFromOPD    bool             `json:"seededFromOpd"`
	Step             int              `json:"wizardStep"`
}

package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Patient holds the structure for the patients collection in mongo
type Patient struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details PatientDetails     `json:"patient" bson:"patient"`
	Version int32              `json:"__v" bson:"__v"`
}

// PatientDetails holds the structure for the inner patient structure as
// defined in the patients collection in mongo
type PatientDetails struct {
	FirstName   string `json:"firstName" bson:"firstName"`
	MiddleName  string `json:"middleName" bson:"middleName"`
	LastName    string `json:"lastName" bson:"lastName"`
	Phone       string `json:"phone" bson:"phone"`
	Email       string `json:"email" bson:"email"`
	AadhaarNo   string `json:"aadhaarNo" bson:"aadhaarNo"`
	DateOfBirth string `json:"dob" bson:"dob"`
	Gender      string `json:"gender" bson:"gender"`
	Occupation  string `json:"occupation" bson:"occupation"`

	Pincode  string `json:"pincode" bson:"pincode"`
	City     string `json:"city" bson:"city"`
	District string `json:"district" bson:"district"`
	State    string `json:"state" bson:"state"`

	PhotoURL     string `json:"photoUrl" bson:"photoUrl"`
	PasswordHash string `json:"-" bson:"passwordHash"`

	// IsInpatient flips to true the first time the patient is admitted
	// through the IPD wizard (OPD to IPD conversion keeps the same record)
	IsInpatient bool `json:"isInpatient" bson:"isInpatient"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// PatientDraft carries the raw step-1 form fields before validation and
// persistence. Password travels in clear only inside the draft; the
// stored record keeps a bcrypt hash.
type PatientDraft struct {
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	AadhaarNo   string `json:"aadhaarNo"`
	DateOfBirth string `json:"dob"`
	Gender      string `json:"gender"`
	Occupation  string `json:"occupation"`

	Pincode  string `json:"pincode"`
	City     string `json:"city"`
	District string `json:"district"`
	State    string `json:"state"`
	// CityCandidates is what the pincode lookup returned for Pincode; when
	// non-empty the chosen City must be one of them
	CityCandidates []string `json:"cityCandidates,omitempty"`

	PhotoURL            string `json:"photoUrl"`
	Password            string `json:"password"`
	ConfirmPassword     string `json:"confirmPassword"`
	DeclarationAccepted bool   `json:"declarationAccepted"`
}

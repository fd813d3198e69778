package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Staff holds the structure for the staff collection in mongo. Staff
// accounts authenticate against the API before driving admissions.
type Staff struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details StaffDetails       `json:"staff" bson:"staff"`
	Version int32              `json:"__v" bson:"__v"`
}

// StaffDetails holds the inner staff structure as defined in the staff
// collection in mongo
type StaffDetails struct {
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password" bson:"password"` // bcrypt hash
	Role      string             `json:"role" bson:"role"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

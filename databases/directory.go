package databases

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/hospital"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

// Directory is the mongo-backed patient directory the admission wizard
// persists through. It implements hospital.PatientDirectory.
type Directory struct {
	Patients   PatientDatabase
	Admissions AdmissionDatabase
}

// NewDirectory wires the directory over the patient and admission stores
func NewDirectory(patients PatientDatabase, admissions AdmissionDatabase) *Directory {
	return &Directory{Patients: patients, Admissions: admissions}
}

// FindOutpatientByID fetches an existing patient record for the OPD to
// IPD conversion path
func (d *Directory) FindOutpatientByID(ctx context.Context, id string) (*models.Patient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid patient id: %w", err)
	}
	patient, err := d.Patients.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, hospital.ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}

// CreatePatient persists a new patient record and returns its id. The
// draft password is stored as a bcrypt hash only.
func (d *Directory) CreatePatient(ctx context.Context, draft models.PatientDraft) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash patient password: %w", err)
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	patient := models.Patient{
		ID:      primitive.NewObjectID(),
		Details: draftToDetails(draft),
	}
	patient.Details.PasswordHash = string(hash)
	patient.Details.IsInpatient = true
	patient.Details.CreatedAt = now
	patient.Details.UpdatedAt = now
	if _, err := d.Patients.InsertOne(ctx, patient); err != nil {
		return "", err
	}
	return patient.ID.Hex(), nil
}

// UpdatePatient updates an existing record in place, preserving the
// stored password hash when the draft carries no new password
func (d *Directory) UpdatePatient(ctx context.Context, id string, draft models.PatientDraft) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid patient id: %w", err)
	}
	details := draftToDetails(draft)
	set := bson.M{
		"patient.firstName":   details.FirstName,
		"patient.middleName":  details.MiddleName,
		"patient.lastName":    details.LastName,
		"patient.phone":       details.Phone,
		"patient.email":       details.Email,
		"patient.aadhaarNo":   details.AadhaarNo,
		"patient.dob":         details.DateOfBirth,
		"patient.gender":      details.Gender,
		"patient.occupation":  details.Occupation,
		"patient.pincode":     details.Pincode,
		"patient.city":        details.City,
		"patient.district":    details.District,
		"patient.state":       details.State,
		"patient.photoUrl":    details.PhotoURL,
		"patient.isInpatient": true,
		"patient.updatedAt":   primitive.NewDateTimeFromTime(time.Now()),
	}
	if draft.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash patient password: %w", err)
		}
		set["patient.passwordHash"] = string(hash)
	}
	return d.Patients.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
}

// FinalizeAdmission durably records a committed admission. A second
// finalize with the same request id is a conflict, which protects
// against duplicate records from a double submit.
func (d *Directory) FinalizeAdmission(ctx context.Context, rec models.AdmissionRecord) (string, error) {
	n, err := d.Admissions.CountDocuments(ctx, bson.M{"admission.requestID": rec.RequestID})
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", hospital.ErrAdmissionConflict
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	rec.CreatedAt = now
	rec.UpdatedAt = now
	admission := models.Admission{
		ID:      primitive.NewObjectID(),
		Details: rec,
	}
	if _, err := d.Admissions.InsertOne(ctx, admission); err != nil {
		return "", err
	}
	return admission.ID.Hex(), nil
}

// ActiveAdmissions lists admissions that still occupy a bed, used to
// warm the bed registry at startup
func (d *Directory) ActiveAdmissions(ctx context.Context) ([]models.Admission, error) {
	return d.Admissions.Find(ctx, bson.M{"admission.status": bson.M{"$ne": "discharged"}})
}

// Discharge marks an admission discharged. The caller releases the bed
// through the registry with the admission's request id.
func (d *Directory) Discharge(ctx context.Context, admissionID, dischargeDate string) (*models.Admission, error) {
	oid, err := primitive.ObjectIDFromHex(admissionID)
	if err != nil {
		return nil, fmt.Errorf("invalid admission id: %w", err)
	}
	admission, err := d.Admissions.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	err = d.Admissions.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"admission.status":        "discharged",
		"admission.dischargeDate": dischargeDate,
		"admission.updatedAt":     primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		return nil, err
	}
	return admission, nil
}

func draftToDetails(draft models.PatientDraft) models.PatientDetails {
	return models.PatientDetails{
		FirstName:   draft.FirstName,
		MiddleName:  draft.MiddleName,
		LastName:    draft.LastName,
		Phone:       draft.Phone,
		Email:       draft.Email,
		AadhaarNo:   draft.AadhaarNo,
		DateOfBirth: draft.DateOfBirth,
		Gender:      draft.Gender,
		Occupation:  draft.Occupation,
		Pincode:     draft.Pincode,
		City:        draft.City,
		District:    draft.District,
		State:       draft.State,
		PhotoURL:    draft.PhotoURL,
	}
}

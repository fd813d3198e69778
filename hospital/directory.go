package hospital

import (
	"context"
	"errors"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

// Sentinel errors surfaced by PatientDirectory implementations
var (
	// ErrPatientNotFound is returned when an outpatient lookup misses
	ErrPatientNotFound = errors.New("patient not found")
	// ErrAdmissionConflict is returned when an admission with the same
	// request id was already finalized (duplicate submit protection)
	ErrAdmissionConflict = errors.New("admission already finalized for this request")
)

// PatientDirectory is the external patient-record store the wizard
// persists through. Implementations are ordinary fallible network
// clients; any non-success means "stay on the current step, surface the
// message, let the staff member retry".
type PatientDirectory interface {
	// FindOutpatientByID fetches an existing (outpatient) record for the
	// OPD to IPD conversion path
	FindOutpatientByID(ctx context.Context, id string) (*models.Patient, error)
	// CreatePatient persists a new patient record and returns its id
	CreatePatient(ctx context.Context, draft models.PatientDraft) (string, error)
	// UpdatePatient updates an existing record in place
	UpdatePatient(ctx context.Context, id string, draft models.PatientDraft) error
	// FinalizeAdmission durably records a committed admission and returns
	// its id. Returns ErrAdmissionConflict for a duplicate request id.
	FinalizeAdmission(ctx context.Context, rec models.AdmissionRecord) (string, error)
}

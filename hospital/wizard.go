package hospital

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

// Step identifies where an admission wizard currently is
type Step int

// Wizard steps. Forward progression is strictly sequential; Cancelled is
// reachable from any non-terminal step.
const (
	StepPatientDetails Step = iota + 1
	StepWardSelection
	StepBedSelection
	StepAdmissionDetails
	StepCommitted
	StepCancelled
)

func (s Step) String() string {
	switch s {
	case StepPatientDetails:
		return "patient-details"
	case StepWardSelection:
		return "ward-selection"
	case StepBedSelection:
		return "bed-selection"
	case StepAdmissionDetails:
		return "admission-details"
	case StepCommitted:
		return "committed"
	case StepCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Errors returned by wizard transitions
var (
	// ErrWrongStep means the caller invoked an operation that is not valid
	// in the wizard's current step
	ErrWrongStep = errors.New("operation not valid in current wizard step")
	// ErrWizardClosed means the wizard already reached a terminal state
	ErrWizardClosed = errors.New("wizard is already finished")
	// ErrBedLost means the remembered bed could not be re-reserved during
	// a finalize retry; the wizard moved back to bed selection
	ErrBedLost = errors.New("bed reservation lost, pick another bed")
)

// Wizard drives one staff member through the four-step admission flow.
// It exclusively owns its AdmissionRequest draft; the only shared state
// it touches is the bed registry.
type Wizard struct {
	// Now is the wizard's clock, replaceable in tests
	Now func() time.Time

	mu          sync.Mutex
	id          string
	requestID   string
	registry    *Registry
	validator   Validator
	directory   PatientDirectory
	draft       models.AdmissionRequest
	step        Step
	holdActive  bool
	admissionID string
}

// NewWizard opens a fresh admission wizard. When seed is non-nil the
// patient fields are prefilled from an existing outpatient record and
// step 1 will update that record in place instead of creating a new one.
func NewWizard(registry *Registry, validator Validator, directory PatientDirectory, seed *models.Patient) *Wizard {
	w := &Wizard{
		Now:       time.Now,
		id:        uuid.New().String(),
		requestID: uuid.New().String(),
		registry:  registry,
		validator: validator,
		directory: directory,
		step:      StepPatientDetails,
	}
	now := w.Now()
	w.draft.Step = int(StepPatientDetails)
	w.draft.AdmissionDetails.AdmissionDate = now.Format("2006-01-02")
	w.draft.AdmissionDetails.AdmissionTime = now.Format("15:04")
	if seed != nil {
		w.draft.Patient = models.PatientDraft{
			FirstName:   seed.Details.FirstName,
			MiddleName:  seed.Details.MiddleName,
			LastName:    seed.Details.LastName,
			Phone:       seed.Details.Phone,
			Email:       seed.Details.Email,
			AadhaarNo:   seed.Details.AadhaarNo,
			DateOfBirth: seed.Details.DateOfBirth,
			Gender:      seed.Details.Gender,
			Occupation:  seed.Details.Occupation,
			Pincode:     seed.Details.Pincode,
			City:        seed.Details.City,
			District:    seed.Details.District,
			State:       seed.Details.State,
			PhotoURL:    seed.Details.PhotoURL,
		}
		w.draft.PersistedPatient = seed.ID.Hex()
		w.draft.SeededFromOPD = true
	}
	return w
}

// ID returns the wizard's session id
func (w *Wizard) ID() string { return w.id }

// RequestID returns the reservation id this wizard holds beds under
func (w *Wizard) RequestID() string { return w.requestID }

// Step returns the wizard's current step
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the in-progress admission request
func (w *Wizard) Draft() models.AdmissionRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.draft
	d.Step = int(w.step)
	return d
}

// AdmissionID returns the finalized admission id, empty before commit
func (w *Wizard) AdmissionID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.admissionID
}

// SubmitStep1 validates the patient fields and persists the patient
// record. On validation failure the wizard stays on step 1 and returns
// the complete violation set. On a persistence failure the validated
// draft is preserved so nothing has to be re-entered.
func (w *Wizard) SubmitStep1(ctx context.Context, p models.PatientDraft) ([]models.FieldError, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepPatientDetails {
		return nil, w.stepError(StepPatientDetails)
	}
	w.draft.Patient = p
	if ferrs := w.validator.ValidateStep1(p); len(ferrs) > 0 {
		return ferrs, nil
	}
	if w.draft.PersistedPatient != "" {
		if err := w.directory.UpdatePatient(ctx, w.draft.PersistedPatient, p); err != nil {
			return nil, fmt.Errorf("failed to update patient record: %w", err)
		}
	} else {
		id, err := w.directory.CreatePatient(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to create patient record: %w", err)
		}
		w.draft.PersistedPatient = id
	}
	w.step = StepWardSelection
	return nil, nil
}

// SelectWard records the ward choice; selecting a ward card is itself
// the action that completes step 2
func (w *Wizard) SelectWard(sel models.WardSelection) ([]models.FieldError, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepWardSelection {
		return nil, w.stepError(StepWardSelection)
	}
	if ferrs := w.validator.ValidateStep2(sel); len(ferrs) > 0 {
		return ferrs, nil
	}
	w.draft.WardSelection = sel
	w.step = StepBedSelection
	return nil, nil
}

// SelectBed tries to reserve the chosen bed. A Reserved outcome advances
// to step 4 with the admission time prefilled to now rounded up to the
// next half hour; any other outcome keeps the wizard on step 3 so the
// grid can be re-displayed with the bed shown unavailable.
func (w *Wizard) SelectBed(bedNumber int) (ReserveOutcome, []models.FieldError, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepBedSelection {
		return BedNotFound, nil, w.stepError(StepBedSelection)
	}
	if ferrs := w.validator.ValidateStep3(bedNumber); len(ferrs) > 0 {
		return BedNotFound, ferrs, nil
	}
	sel := w.draft.WardSelection
	outcome := w.registry.TryReserve(sel.WardType, sel.WardNumber, bedNumber, w.requestID)
	if outcome != Reserved {
		return outcome, nil, nil
	}
	w.draft.BedNumber = bedNumber
	w.holdActive = true
	at := roundUpToHalfHour(w.Now())
	w.draft.AdmissionDetails.AdmissionDate = at.Format("2006-01-02")
	w.draft.AdmissionDetails.AdmissionTime = at.Format("15:04")
	w.step = StepAdmissionDetails
	return Reserved, nil, nil
}

// SubmitStep4 validates the admission details, commits the held bed and
// finalizes the admission record. If finalize fails after the bed was
// committed the hold is released so no orphaned lock survives, the
// wizard stays on step 4, and the next manual submit re-reserves the
// remembered bed first; ErrBedLost is returned (and the wizard falls
// back to step 3) if somebody else took it in between.
func (w *Wizard) SubmitStep4(ctx context.Context, d models.AdmissionDetails) ([]models.FieldError, string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepAdmissionDetails {
		return nil, "", w.stepError(StepAdmissionDetails)
	}
	if ferrs := w.validator.ValidateStep4(d); len(ferrs) > 0 {
		return ferrs, "", nil
	}
	w.draft.AdmissionDetails = d

	sel := w.draft.WardSelection
	if !w.holdActive {
		// a previous finalize failed and released the bed; take it again
		outcome := w.registry.TryReserve(sel.WardType, sel.WardNumber, w.draft.BedNumber, w.requestID)
		if outcome != Reserved {
			w.step = StepBedSelection
			return nil, "", fmt.Errorf("%w: bed %d is %s", ErrBedLost, w.draft.BedNumber, outcome)
		}
		w.holdActive = true
	}

	if co := w.registry.Commit(sel.WardType, sel.WardNumber, w.draft.BedNumber, w.requestID); co != Committed {
		// the wizard believes it holds this bed; anything else is a defect
		// in the orchestration, not a user-facing condition
		panic(fmt.Sprintf("wizard %s: commit of bed %s-%s/%d refused while hold active",
			w.id, sel.WardType, sel.WardNumber, w.draft.BedNumber))
	}

	rec := models.AdmissionRecord{
		PatientID:       w.draft.PersistedPatient,
		WardType:        sel.WardType,
		WardNumber:      sel.WardNumber,
		BedNumber:       w.draft.BedNumber,
		AdmissionDate:   d.AdmissionDate,
		AdmissionTime:   d.AdmissionTime,
		Status:          d.Status,
		Department:      d.Department,
		InsuranceType:   d.InsuranceType,
		SurgeryRequired: d.SurgeryRequired,
		DischargeDate:   d.DischargeDate,
		Diagnosis:       d.Diagnosis,
		Reason:          d.Reason,
		RequestID:       w.requestID,
	}
	id, err := w.directory.FinalizeAdmission(ctx, rec)
	if err != nil {
		// a committed bed with no admission record is an orphaned lock;
		// give it back and require an explicit retry
		if out := w.registry.Release(sel.WardType, sel.WardNumber, w.draft.BedNumber, w.requestID); out != Released {
			zap.S().Errorw("failed to release bed after finalize failure",
				"wizard", w.id, "bed", w.draft.BedNumber)
		}
		w.holdActive = false
		return nil, "", fmt.Errorf("failed to finalize admission: %w", err)
	}
	w.admissionID = id
	w.step = StepCommitted
	return nil, id, nil
}

// Back moves exactly one step backward. It is not permitted from step 1
// (cancel instead) or from a terminal state. Backing out of step 4
// releases the held bed.
func (w *Wizard) Back() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepCommitted, StepCancelled:
		return w.step, ErrWizardClosed
	case StepPatientDetails:
		return w.step, fmt.Errorf("%w: cannot go back from %s", ErrWrongStep, w.step)
	case StepAdmissionDetails:
		w.releaseHoldLocked()
	}
	w.step--
	return w.step, nil
}

// Cancel abandons the wizard from any step, releasing any held bed and
// discarding the draft. Cancelling twice is a no-op.
func (w *Wizard) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepCancelled:
		return nil
	case StepCommitted:
		return ErrWizardClosed
	}
	w.releaseHoldLocked()
	w.draft = models.AdmissionRequest{}
	w.step = StepCancelled
	return nil
}

func (w *Wizard) releaseHoldLocked() {
	if !w.holdActive {
		return
	}
	sel := w.draft.WardSelection
	if out := w.registry.Release(sel.WardType, sel.WardNumber, w.draft.BedNumber, w.requestID); out != Released {
		zap.S().Errorw("failed to release held bed",
			"wizard", w.id, "ward", fmt.Sprintf("%s-%s", sel.WardType, sel.WardNumber), "bed", w.draft.BedNumber)
	}
	w.holdActive = false
}

func (w *Wizard) stepError(want Step) error {
	if w.step == StepCommitted || w.step == StepCancelled {
		return ErrWizardClosed
	}
	return fmt.Errorf("%w: at %s, expected %s", ErrWrongStep, w.step, want)
}

// roundUpToHalfHour returns t rounded up to the next half-hour mark,
// unchanged when already on one
func roundUpToHalfHour(t time.Time) time.Time {
	r := t.Truncate(30 * time.Minute)
	if r.Equal(t) {
		return t
	}
	return r.Add(30 * time.Minute)
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/config"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/hospital"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

// Admission exported for testing purposes
type Admission struct {
	Sessions  *hospital.Sessions
	Registry  *hospital.Registry
	Validator hospital.Validator
	Directory hospital.PatientDirectory
}

// wizardStateResponse is what every wizard endpoint returns on success
type wizardStateResponse struct {
	WizardID    string                  `json:"wizardId"`
	Step        int                     `json:"step"`
	StepName    string                  `json:"stepName"`
	Draft       models.AdmissionRequest `json:"draft"`
	AdmissionID string                  `json:"admissionId,omitempty"`
}

type startWizardRequest struct {
	SeedPatientID string `json:"seedPatientId,omitempty"`
}

type selectBedRequest struct {
	BedNumber int `json:"bedNumber"`
}

// StartWizardHandler opens a new admission wizard, optionally seeded
// from an existing outpatient record
func (a Admission) StartWizardHandler(w http.ResponseWriter, r *http.Request) {
	var req startWizardRequest
	if r.Body != nil {
		// an empty body starts a blank wizard
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	var seed *models.Patient
	if req.SeedPatientID != "" {
		p, err := a.Directory.FindOutpatientByID(r.Context(), req.SeedPatientID)
		if err != nil {
			if errors.Is(err, hospital.ErrPatientNotFound) {
				config.ErrorStatus("outpatient record not found", http.StatusNotFound, w, err)
				return
			}
			config.ErrorStatus("failed to look up outpatient record", http.StatusBadGateway, w, err)
			return
		}
		seed = p
	}

	wiz := hospital.NewWizard(a.Registry, a.Validator, a.Directory, seed)
	a.Sessions.Put(wiz)
	zap.S().Infow("admission wizard started", "wizardID", wiz.ID(), "seeded", seed != nil)
	writeWizardState(w, http.StatusCreated, wiz)
}

// WizardStateHandler returns the wizard's current step and draft
func (a Admission) WizardStateHandler(w http.ResponseWriter, r *http.Request) {
	wiz, ok := a.wizard(w, r)
	if !ok {
		return
	}
	writeWizardState(w, http.StatusOK, wiz)
}

// SubmitPatientHandler runs step 1: validate the patient fields and
// persist the record. Validation failures return the complete set.
func (a Admission) SubmitPatientHandler(w http.ResponseWriter, r *http.Request) {
	wiz, ok := a.wizard(w, r)
	if !ok {
		return
	}
	var draft models.PatientDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	ferrs, err := wiz.SubmitStep1(r.Context(), draft)
	if err != nil {
		writeWizardError(w, err)
		return
	}
	if len(ferrs) > 0 {
		writeFieldErrors(w, int(hospital.StepPatientDetails), ferrs)
		return
	}
	writeWizardState(w, http.StatusOK, wiz)
}

// SelectWardHandler runs step 2: picking a ward card is the action
func (a Admission) SelectWardHandler(w http.ResponseWriter, r *http.Request) {
	wiz, ok := a.wizard(w, r)
	if !ok {
		return
	}
	var sel models.WardSelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	ferrs, err := wiz.SelectWard(sel)
	if err != nil {
		writeWizardError(w, err)
		return
	}
	if len(ferrs) > 0 {
		writeFieldErrors(w, int(hospital.StepWardSelection), ferrs)
		return
	}
	writeWizardState(w, http.StatusOK, wiz)
}

// SelectBedHandler runs step 3: try to reserve the chosen bed. On
// contention the fresh availability snapshot rides along so the grid can
// be re-displayed with the bed shown unavailable.
func (a Admission) SelectBedHandler(w http.ResponseWriter, r *http.Request) {
	wiz, ok := a.wizard(w, r)
	if !ok {
		return
	}
	var req selectBedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	outcome, ferrs, err := wiz.SelectBed(req.BedNumber)
	if err != nil {
		writeWizardError(w, err)
		return
	}
	if len(ferrs) > 0 {
		writeFieldErrors(w, int(hospital.StepBedSelection), ferrs)
		return
	}
	if outcome != hospital.Reserved {
		a.writeBedConflict(w, wiz, req.BedNumber, outcome)
		return
	}
	writeWizardState(w, http.StatusOK, wiz)
}

// FinalizeHandler runs step 4: validate, commit the bed and persist the
// admission. A failed persistence releases the bed and requires an
// explicit retry; a lost bed sends the staff member back to step 3.
func (a Admission) FinalizeHandler(w http.ResponseWriter, r *http.Request) {
	wiz, ok := a.wizard(w, r)
	if !ok {
		return
	}
	var details models.AdmissionDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	ferrs, admissionID, err := wiz.SubmitStep4(r.Context(), details)
	if err != nil {
		if errors.Is(err, hospital.ErrBedLost) {
			a.writeBedConflict(w, wiz, wiz.Draft().BedNumber, hospital.AlreadyTaken)
			return
		}
		writeWizardError(w, err)
		return
	}
	if len(ferrs) > 0 {
		writeFieldErrors(w, int(hospital.StepAdmissionDetails), ferrs)
		return
	}
	zap.S().Infow("admission committed", "wizardID", wiz.ID(), "admissionID", admissionID)
	a.Sessions.Remove(wiz.ID())
	writeWizardState(w, http.StatusCreated, wiz)
}

// BackHandler moves the wizard one step backward
func (a Admission) BackHandler(w http.ResponseWriter, r *http.Request) {
	wiz, ok := a.wizard(w, r)
	if !ok {
		return
	}
	if _, err := wiz.Back(); err != nil {
		writeWizardError(w, err)
		return
	}
	writeWizardState(w, http.StatusOK, wiz)
}

// CancelWizardHandler abandons the wizard and releases any held bed
func (a Admission) CancelWizardHandler(w http.ResponseWriter, r *http.Request) {
	wiz, ok := a.wizard(w, r)
	if !ok {
		return
	}
	if err := wiz.Cancel(); err != nil {
		writeWizardError(w, err)
		return
	}
	a.Sessions.Remove(wiz.ID())
	zap.S().Infow("admission wizard cancelled", "wizardID", wiz.ID())
	w.WriteHeader(http.StatusNoContent)
}

func (a Admission) wizard(w http.ResponseWriter, r *http.Request) (*hospital.Wizard, bool) {
	id := mux.Vars(r)["wizard_id"]
	wiz, ok := a.Sessions.Get(id)
	if !ok {
		config.ErrorStatus("wizard not found", http.StatusNotFound, w, errors.New("no open wizard with id "+id))
		return nil, false
	}
	return wiz, true
}

func (a Admission) writeBedConflict(w http.ResponseWriter, wiz *hospital.Wizard, bedNumber int, outcome hospital.ReserveOutcome) {
	sel := wiz.Draft().WardSelection
	snap, _ := a.Registry.Availability(sel.WardType, sel.WardNumber)
	body := map[string]interface{}{
		"bedNumber":    bedNumber,
		"outcome":      outcome.String(),
		"availability": snap,
	}
	b, err := json.Marshal(body)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusConflict)
	w.Write(b)
}

func writeWizardState(w http.ResponseWriter, status int, wiz *hospital.Wizard) {
	resp := wizardStateResponse{
		WizardID:    wiz.ID(),
		Step:        int(wiz.Step()),
		StepName:    wiz.Step().String(),
		Draft:       wiz.Draft(),
		AdmissionID: wiz.AdmissionID(),
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(status)
	w.Write(b)
}

func writeFieldErrors(w http.ResponseWriter, step int, ferrs []models.FieldError) {
	b, err := json.Marshal(models.FieldErrorResponse{Step: step, Errors: ferrs})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	w.Write(b)
}

func writeWizardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hospital.ErrWrongStep):
		config.ErrorStatus("operation not valid for current step", http.StatusConflict, w, err)
	case errors.Is(err, hospital.ErrWizardClosed):
		config.ErrorStatus("wizard already finished", http.StatusGone, w, err)
	default:
		// persistence failure: the draft survives, the caller retries
		config.ErrorStatus("persistence failed, please retry", http.StatusBadGateway, w, err)
	}
}

// Discharge exported for testing purposes
type Discharge struct {
	Store    DischargeStore
	Registry *hospital.Registry
}

// DischargeStore is the slice of the directory the discharge handler needs
type DischargeStore interface {
	Discharge(ctx context.Context, admissionID, dischargeDate string) (*models.Admission, error)
}

type dischargeRequest struct {
	DischargeDate string `json:"dischargeDate"`
}

// DischargeHandler marks an admission discharged and frees its bed
func (d Discharge) DischargeHandler(w http.ResponseWriter, r *http.Request) {
	admissionID := mux.Vars(r)["admission_id"]
	var req dischargeRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.DischargeDate == "" {
		req.DischargeDate = time.Now().Format("2006-01-02")
	}

	adm, err := d.Store.Discharge(r.Context(), admissionID, req.DischargeDate)
	if err != nil {
		config.ErrorStatus("failed to discharge admission", http.StatusNotFound, w, err)
		return
	}
	det := adm.Details
	if out := d.Registry.Release(det.WardType, det.WardNumber, det.BedNumber, det.RequestID); out != hospital.Released {
		// the record is discharged either way; a bed we cannot find is loud but not fatal
		zap.S().Errorw("discharged admission did not hold its bed",
			"admissionID", admissionID, "bed", det.BedNumber)
	}
	zap.S().Infow("patient discharged", "admissionID", admissionID, "bed", det.BedNumber)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "discharged"}`))
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/config"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/hospital"
)

// Patient exported for testing purposes
type Patient struct {
	Directory hospital.PatientDirectory
}

// PatientByIDHandler returns a patient record by ID, used by the OPD to
// IPD conversion path to preview the record before seeding a wizard
func (p Patient) PatientByIDHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	dbResp, err := p.Directory.FindOutpatientByID(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, hospital.ErrPatientNotFound) {
			config.ErrorStatus("patient not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get patient by ID", http.StatusBadGateway, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

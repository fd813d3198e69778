package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/config"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/hospital"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

var errMaintenanceRejected = fmt.Errorf("only available beds can be flagged and only flagged beds can be cleared")

// Ward exported for testing purposes
type Ward struct {
	Catalog  *hospital.Catalog
	Registry *hospital.Registry
}

// ListWardsHandler returns every registered ward in declaration order
func (wd Ward) ListWardsHandler(w http.ResponseWriter, r *http.Request) {
	wards := wd.Catalog.ListWards()
	b, err := json.Marshal(wards)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AvailabilityHandler returns a consistent occupancy snapshot for one ward
func (wd Ward) AvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	wardType, wardNumber := wardVars(r)

	snap, found := wd.Registry.Availability(wardType, wardNumber)
	if !found {
		config.ErrorStatus("ward not found", http.StatusNotFound, w, errWardNotFound(wardType, wardNumber))
		return
	}
	b, err := json.Marshal(snap)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SetMaintenanceHandler flags an available bed as under maintenance
func (wd Ward) SetMaintenanceHandler(w http.ResponseWriter, r *http.Request) {
	wardType, wardNumber := wardVars(r)
	bedNumber, ok := bedVar(w, r)
	if !ok {
		return
	}
	out := wd.Registry.SetMaintenance(wardType, wardNumber, bedNumber)
	wd.writeMaintenance(w, wardType, wardNumber, bedNumber, out)
}

// ClearMaintenanceHandler returns a flagged bed to service
func (wd Ward) ClearMaintenanceHandler(w http.ResponseWriter, r *http.Request) {
	wardType, wardNumber := wardVars(r)
	bedNumber, ok := bedVar(w, r)
	if !ok {
		return
	}
	out := wd.Registry.ClearMaintenance(wardType, wardNumber, bedNumber)
	wd.writeMaintenance(w, wardType, wardNumber, bedNumber, out)
}

func (wd Ward) writeMaintenance(w http.ResponseWriter, wardType models.WardType, wardNumber string, bedNumber int, out hospital.MaintenanceOutcome) {
	switch out {
	case hospital.MaintenanceBedNotFound:
		config.ErrorStatus("bed not found", http.StatusNotFound, w, errWardNotFound(wardType, wardNumber))
		return
	case hospital.MaintenanceRejected:
		config.ErrorStatus("bed is not in a state that allows this change", http.StatusConflict, w, errMaintenanceRejected)
		return
	}
	zap.S().Infow("bed maintenance flag changed",
		"ward", string(wardType)+"-"+wardNumber, "bed", bedNumber)
	snap, _ := wd.Registry.Availability(wardType, wardNumber)
	b, err := json.Marshal(snap)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func wardVars(r *http.Request) (models.WardType, string) {
	vars := mux.Vars(r)
	return models.WardType(vars["ward_type"]), vars["ward_number"]
}

func bedVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	bedNumber, err := strconv.Atoi(mux.Vars(r)["bed_number"])
	if err != nil || bedNumber <= 0 {
		config.ErrorStatus("invalid bed number", http.StatusBadRequest, w, err)
		return 0, false
	}
	return bedNumber, true
}

func errWardNotFound(wardType models.WardType, wardNumber string) error {
	return fmt.Errorf("no ward %s-%s", wardType, wardNumber)
}

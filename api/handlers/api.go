package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/api"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/api/scheduler"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/config"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/databases"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/hospital"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

// App stores the router, db connection and the bed registry so they can
// be reused across handlers
type App struct {
	Router    *mux.Router
	Config    config.Config
	Catalog   *hospital.Catalog
	Registry  *hospital.Registry
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewStaffDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	patients := databases.NewPatientDatabase(a.dbHelper)
	admissions := databases.NewAdmissionDatabase(a.dbHelper)
	directory := databases.NewDirectory(patients, admissions)
	validator := hospital.Validator{Options: models.DefaultOptionSets(), Catalog: a.Catalog}

	ward := Ward{Catalog: a.Catalog, Registry: a.Registry}
	adm := Admission{
		Sessions:  hospital.NewSessions(),
		Registry:  a.Registry,
		Validator: validator,
		Directory: directory,
	}
	dis := Discharge{Store: directory, Registry: a.Registry}
	pat := Patient{Directory: directory}
	cloudinaryHandler := CloudinaryHandler{}
	feed := WardFeed{Registry: a.Registry}

	r := mux.NewRouter()

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.Handle("/ws/wards/{ward_type}/{ward_number}", http.HandlerFunc(feed.ServeWard))

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/wards", api.Middleware(http.HandlerFunc(ward.ListWardsHandler))).Methods("GET")
	apiCreate.Handle("/wards/{ward_type}/{ward_number}/availability", api.Middleware(http.HandlerFunc(ward.AvailabilityHandler))).Methods("GET")
	apiCreate.Handle("/wards/{ward_type}/{ward_number}/beds/{bed_number}/maintenance", api.Middleware(http.HandlerFunc(ward.SetMaintenanceHandler))).Methods("PUT")
	apiCreate.Handle("/wards/{ward_type}/{ward_number}/beds/{bed_number}/maintenance", api.Middleware(http.HandlerFunc(ward.ClearMaintenanceHandler))).Methods("DELETE")

	apiCreate.Handle("/ipd/admissions", api.Middleware(http.HandlerFunc(adm.StartWizardHandler))).Methods("POST")
	apiCreate.Handle("/ipd/admissions/{wizard_id}", api.Middleware(http.HandlerFunc(adm.WizardStateHandler))).Methods("GET")
	apiCreate.Handle("/ipd/admissions/{wizard_id}", api.Middleware(http.HandlerFunc(adm.CancelWizardHandler))).Methods("DELETE")
	apiCreate.Handle("/ipd/admissions/{wizard_id}/patient", api.Middleware(http.HandlerFunc(adm.SubmitPatientHandler))).Methods("POST")
	apiCreate.Handle("/ipd/admissions/{wizard_id}/ward", api.Middleware(http.HandlerFunc(adm.SelectWardHandler))).Methods("POST")
	apiCreate.Handle("/ipd/admissions/{wizard_id}/bed", api.Middleware(http.HandlerFunc(adm.SelectBedHandler))).Methods("POST")
	apiCreate.Handle("/ipd/admissions/{wizard_id}/details", api.Middleware(http.HandlerFunc(adm.FinalizeHandler))).Methods("POST")
	apiCreate.Handle("/ipd/admissions/{wizard_id}/back", api.Middleware(http.HandlerFunc(adm.BackHandler))).Methods("POST")

	apiCreate.Handle("/admissions/{admission_id}/discharge", api.Middleware(http.HandlerFunc(dis.DischargeHandler))).Methods("PUT")

	apiCreate.Handle("/patients/{patient_id}", api.Middleware(http.HandlerFunc(pat.PatientByIDHandler))).Methods("GET")

	apiCreate.Handle("/cloudinary/signature", api.Middleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("GET")
	apiCreate.Handle("/cloudinary/upload", api.Middleware(http.HandlerFunc(cloudinaryHandler.UploadPhoto))).Methods("POST")

	return r
}

// Initialize connects the database, seeds the ward catalog, warms the
// bed registry from persisted active admissions and builds the routes
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("ipd-admission-api has connected to the database")

	wards, err := config.LoadWards(&a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to load ward seed")
		return err
	}
	a.Catalog, err = hospital.NewCatalog(wards)
	if err != nil {
		zap.S().With(err).Error("failed to build ward catalog")
		return err
	}
	a.Registry = hospital.NewRegistry(a.Catalog, a.Config.HoldTTL)

	if err := a.warmRegistry(); err != nil {
		zap.S().With(err).Warn("failed to warm bed registry from admissions; continuing with empty occupancy")
	}

	a.Scheduler = scheduler.NewScheduler(a.Registry)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

// warmRegistry replays persisted active admissions into the registry so
// a restart does not forget which beds are occupied
func (a *App) warmRegistry() error {
	directory := databases.NewDirectory(
		databases.NewPatientDatabase(a.dbHelper),
		databases.NewAdmissionDatabase(a.dbHelper),
	)
	active, err := directory.ActiveAdmissions(context.TODO())
	if err != nil {
		return err
	}
	for _, adm := range active {
		d := adm.Details
		if err := a.Registry.SeedOccupied(d.WardType, d.WardNumber, d.BedNumber, d.RequestID); err != nil {
			zap.S().Warnw("skipping admission during registry warm-up",
				"admissionID", adm.ID.Hex(), "error", err)
		}
	}
	zap.S().Infow("bed registry warmed", "activeAdmissions", len(active))
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	w.Write(b)
}

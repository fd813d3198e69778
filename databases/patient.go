package databases

// go generate: mockery --name PatientDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

const patientName = "patients"

// PatientDatabase contains the methods to use with the patient database
type PatientDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Patient, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Patient, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
}

type patientDatabase struct {
	db DatabaseHelper
}

// NewPatientDatabase initializes a new instance of patient database with the provided db connection
func NewPatientDatabase(db DatabaseHelper) PatientDatabase {
	return &patientDatabase{
		db: db,
	}
}

func (p *patientDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Patient, error) {
	patient := &models.Patient{}
	err := p.db.Collection(patientName).FindOne(ctx, filter, opts...).Decode(&patient)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (p *patientDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Patient, error) {
	var patients []models.Patient
	err := p.db.Collection(patientName).Find(ctx, filter, opts...).Decode(&patients)
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (p *patientDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return p.db.Collection(patientName).InsertOne(ctx, document, opts...)
}

func (p *patientDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	return p.db.Collection(patientName).UpdateOne(ctx, filter, update, opts...)
}

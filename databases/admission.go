package databases

// go generate: mockery --name AdmissionDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

const admissionName = "admissions"

// AdmissionDatabase contains the methods to use with the admission database
type AdmissionDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Admission, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Admission, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type admissionDatabase struct {
	db DatabaseHelper
}

// NewAdmissionDatabase initializes a new instance of admission database with the provided db connection
func NewAdmissionDatabase(db DatabaseHelper) AdmissionDatabase {
	return &admissionDatabase{
		db: db,
	}
}

func (a *admissionDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Admission, error) {
	admission := &models.Admission{}
	err := a.db.Collection(admissionName).FindOne(ctx, filter, opts...).Decode(&admission)
	if err != nil {
		return nil, err
	}
	return admission, nil
}

func (a *admissionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Admission, error) {
	var admissions []models.Admission
	err := a.db.Collection(admissionName).Find(ctx, filter, opts...).Decode(&admissions)
	if err != nil {
		return nil, err
	}
	return admissions, nil
}

func (a *admissionDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return a.db.Collection(admissionName).InsertOne(ctx, document, opts...)
}

func (a *admissionDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	return a.db.Collection(admissionName).UpdateOne(ctx, filter, update, opts...)
}

func (a *admissionDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return a.db.Collection(admissionName).CountDocuments(ctx, filter, opts...)
}

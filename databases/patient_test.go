package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/config"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/databases"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/databases/mocks"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

func TestNewPatientDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	patientDB := databases.NewPatientDatabase(db)

	assert.NotEmpty(t, patientDB)
}

func TestPatientDatabase_FindOne(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	mockedID := primitive.NewObjectID()

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Patient)
		(*arg).ID = mockedID
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patients").Return(collectionHelper)

	// Create new database with mocked Database interface
	patientDba := databases.NewPatientDatabase(dbHelper)

	// Call method with defined filter, that in our mocked function returns
	// mocked-error
	patient, err := patientDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, patient)
	assert.EqualError(t, err, "mocked-error")

	// Now call the same function with a different filter for the correct
	// result
	patient, err = patientDba.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, mockedID, patient.ID)
	assert.NoError(t, err)
}

func TestPatientDatabase_Find(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var crHelperErr databases.CursorHelper
	var crHelperCorrect databases.CursorHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	crHelperErr = &mocks.CursorHelper{}
	crHelperCorrect = &mocks.CursorHelper{}

	mockedID := primitive.NewObjectID()

	crHelperErr.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	crHelperCorrect.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Patient)
		(*arg) = []models.Patient{{ID: mockedID}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": true}).
		Return(crHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": false}).
		Return(crHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patients").Return(collectionHelper)

	// Create new database with mocked Database interface
	patientDba := databases.NewPatientDatabase(dbHelper)

	// Call method with defined filter, that in our mocked function returns
	// mocked-error
	patients, err := patientDba.Find(context.Background(), bson.M{"error": true})

	assert.Empty(t, patients)
	assert.EqualError(t, err, "mocked-error")

	// Now call the same function with a different filter for the correct
	// result
	patients, err = patientDba.Find(context.Background(), bson.M{"error": false})

	assert.Equal(t, []models.Patient{{ID: mockedID}}, patients)
	assert.NoError(t, err)
}

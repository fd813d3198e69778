package hospital_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/hospital"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

func newTestValidator(t *testing.T) hospital.Validator {
	t.Helper()
	c, err := hospital.NewCatalog(testWards())
	assert.NoError(t, err)
	return hospital.Validator{Options: models.DefaultOptionSets(), Catalog: c}
}

func validDraft() models.PatientDraft {
	return models.PatientDraft{
		FirstName:           "Asha",
		LastName:            "Kulkarni",
		Phone:               "9876543210",
		Email:               "asha.kulkarni@example.com",
		AadhaarNo:           "1234-5678-9012",
		DateOfBirth:         "1988-04-12",
		Gender:              "female",
		Occupation:          "employed",
		Pincode:             "560001",
		City:                "Bengaluru",
		CityCandidates:      []string{"Bengaluru"},
		PhotoURL:            "https://res.cloudinary.com/demo/patients/asha.jpg",
		Password:            "Sunrise@2024",
		ConfirmPassword:     "Sunrise@2024",
		DeclarationAccepted: true,
	}
}

func fieldsOf(errs []models.FieldError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidator_Step1ValidDraft(t *testing.T) {
	v := newTestValidator(t)
	assert.Empty(t, v.ValidateStep1(validDraft()))
}

func TestValidator_Step1ReportsAllViolationsAtOnce(t *testing.T) {
	v := newTestValidator(t)

	d := validDraft()
	d.FirstName = "  "
	d.Phone = "12345"
	d.Email = "not-an-email"
	d.DeclarationAccepted = false

	fields := fieldsOf(v.ValidateStep1(d))
	assert.ElementsMatch(t, []string{"firstName", "phone", "email", "declarationAccepted"}, fields)
}

func TestValidator_Step1Phone(t *testing.T) {
	v := newTestValidator(t)
	for _, phone := range []string{"12345", "98765432101", "98765abc10", ""} {
		d := validDraft()
		d.Phone = phone
		assert.Contains(t, fieldsOf(v.ValidateStep1(d)), "phone", "phone %q should be rejected", phone)
	}
}

func TestValidator_Step1AadhaarSeparatorsIgnored(t *testing.T) {
	v := newTestValidator(t)
	for _, aadhaar := range []string{"123456789012", "1234-5678-9012", "1234 5678 9012"} {
		d := validDraft()
		d.AadhaarNo = aadhaar
		assert.Empty(t, v.ValidateStep1(d), "aadhaar %q should be accepted", aadhaar)
	}

	d := validDraft()
	d.AadhaarNo = "1234-5678-901"
	assert.Contains(t, fieldsOf(v.ValidateStep1(d)), "aadhaarNo")
}

func TestValidator_Step1CityMustMatchPincodeLookup(t *testing.T) {
	v := newTestValidator(t)

	d := validDraft()
	d.CityCandidates = []string{"Mumbai", "Thane"}
	assert.Contains(t, fieldsOf(v.ValidateStep1(d)), "city")

	// with no lookup result any non-empty city passes
	d = validDraft()
	d.CityCandidates = nil
	assert.Empty(t, v.ValidateStep1(d))
}

func TestValidator_Step1Password(t *testing.T) {
	v := newTestValidator(t)

	cases := []struct {
		password string
		ok       bool
	}{
		{"Sunrise@2024", true},
		{"Aa1!xyzq", true},
		{"Sh@rt1A", false},      // under 8 characters
		{"sunrise@2024", false}, // no uppercase
		{"SUNRISE@2024", false}, // no lowercase
		{"Sunrise@Year", false}, // no digit
		{"Sunrise2024", false},  // no symbol
		{"Sunrise~2024", false}, // symbol outside the accepted set
	}
	for _, tc := range cases {
		d := validDraft()
		d.Password = tc.password
		d.ConfirmPassword = tc.password
		errs := v.ValidateStep1(d)
		if tc.ok {
			assert.Empty(t, errs, "password %q should be accepted", tc.password)
		} else {
			assert.Contains(t, fieldsOf(errs), "password", "password %q should be rejected", tc.password)
		}
	}
}

func TestValidator_Step1ConfirmPasswordMismatch(t *testing.T) {
	v := newTestValidator(t)
	d := validDraft()
	d.ConfirmPassword = "Different@2024"
	assert.Contains(t, fieldsOf(v.ValidateStep1(d)), "confirmPassword")
}

func TestValidator_Step1ClosedOptionSets(t *testing.T) {
	v := newTestValidator(t)

	d := validDraft()
	d.Gender = "unknown"
	assert.Contains(t, fieldsOf(v.ValidateStep1(d)), "gender")

	d = validDraft()
	d.Occupation = "astronaut"
	assert.Contains(t, fieldsOf(v.ValidateStep1(d)), "occupation")
}

func TestValidator_Step2(t *testing.T) {
	v := newTestValidator(t)

	assert.Empty(t, v.ValidateStep2(models.WardSelection{WardType: models.WardICU, WardNumber: "C"}))

	errs := v.ValidateStep2(models.WardSelection{})
	assert.Equal(t, "ward", errs[0].Field)

	errs = v.ValidateStep2(models.WardSelection{WardType: models.WardMaternity, WardNumber: "Z"})
	assert.Equal(t, "ward", errs[0].Field)
}

func TestValidator_Step3(t *testing.T) {
	v := newTestValidator(t)
	assert.Empty(t, v.ValidateStep3(4))
	assert.NotEmpty(t, v.ValidateStep3(0))
	assert.NotEmpty(t, v.ValidateStep3(-1))
}

func TestValidator_Step4(t *testing.T) {
	v := newTestValidator(t)

	d := models.AdmissionDetails{
		AdmissionDate: "2025-03-04",
		AdmissionTime: "10:30",
		Status:        "admitted",
		Department:    "cardiology",
		InsuranceType: "none",
	}
	assert.Empty(t, v.ValidateStep4(d))

	d.Status = "teleported"
	d.AdmissionDate = ""
	fields := fieldsOf(v.ValidateStep4(d))
	assert.ElementsMatch(t, []string{"status", "admissionDate"}, fields)
}

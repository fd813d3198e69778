package hospital

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

var (
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
	emailRe   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	aadhaarRe = regexp.MustCompile(`^[0-9]{12}$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
)

// passwordSymbols is the fixed symbol set accepted by the password policy
const passwordSymbols = `!@#$%^&*()-_+=`

// Validator evaluates the per-step admission rules. It is pure: no I/O,
// no mutation, identical input yields identical output. Whether a chosen
// bed is actually free is the registry's job, not the validator's.
type Validator struct {
	Options models.OptionSets
	Catalog *Catalog
}

// ValidateStep1 checks the patient identity fields and returns the
// complete set of violations in one pass
func (v Validator) ValidateStep1(p models.PatientDraft) []models.FieldError {
	var errs []models.FieldError
	add := func(field, msg string) {
		errs = append(errs, models.FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(p.FirstName) == "" {
		add("firstName", "first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		add("lastName", "last name is required")
	}
	if !phoneRe.MatchString(p.Phone) {
		add("phone", "phone must be exactly 10 digits")
	}
	if !emailRe.MatchString(p.Email) {
		add("email", "email is not a valid address")
	}
	if !aadhaarRe.MatchString(normalizeAadhaar(p.AadhaarNo)) {
		add("aadhaarNo", "aadhaar number must be 12 digits")
	}
	if strings.TrimSpace(p.DateOfBirth) == "" {
		add("dob", "date of birth is required")
	}
	if !models.Contains(v.Options.Genders, p.Gender) {
		add("gender", "gender must be one of the configured options")
	}
	if !models.Contains(v.Options.Occupations, p.Occupation) {
		add("occupation", "occupation must be one of the configured options")
	}
	if !pincodeRe.MatchString(p.Pincode) {
		add("pincode", "pincode must be exactly 6 digits")
	}
	if strings.TrimSpace(p.City) == "" {
		add("city", "city is required")
	} else if len(p.CityCandidates) > 0 && !models.Contains(p.CityCandidates, p.City) {
		add("city", "city must match the pincode lookup")
	}
	if strings.TrimSpace(p.PhotoURL) == "" {
		add("photoUrl", "patient photo is required")
	}
	if msg := checkPassword(p.Password); msg != "" {
		add("password", msg)
	}
	if p.ConfirmPassword != p.Password {
		add("confirmPassword", "passwords do not match")
	}
	if !p.DeclarationAccepted {
		add("declarationAccepted", "declaration must be accepted")
	}
	return errs
}

// ValidateStep2 checks that a ward is selected and exists in the catalog
func (v Validator) ValidateStep2(sel models.WardSelection) []models.FieldError {
	if sel.WardType == "" || sel.WardNumber == "" {
		return []models.FieldError{{Field: "ward", Message: "a ward must be selected"}}
	}
	if _, ok := v.Catalog.GetWard(sel.WardType, sel.WardNumber); !ok {
		return []models.FieldError{{Field: "ward", Message: "selected ward does not exist"}}
	}
	return nil
}

// ValidateStep3 checks that a bed is selected. Reserving it is the
// caller's responsibility via the registry before reaching step 4.
func (v Validator) ValidateStep3(bedNumber int) []models.FieldError {
	if bedNumber <= 0 {
		return []models.FieldError{{Field: "bed", Message: "a bed must be selected"}}
	}
	return nil
}

// ValidateStep4 checks the admission detail fields
func (v Validator) ValidateStep4(d models.AdmissionDetails) []models.FieldError {
	var errs []models.FieldError
	add := func(field, msg string) {
		errs = append(errs, models.FieldError{Field: field, Message: msg})
	}
	if strings.TrimSpace(d.AdmissionDate) == "" {
		add("admissionDate", "admission date is required")
	}
	if strings.TrimSpace(d.AdmissionTime) == "" {
		add("admissionTime", "admission time is required")
	}
	if !models.Contains(v.Options.Statuses, d.Status) {
		add("status", "status must be one of the configured options")
	}
	if !models.Contains(v.Options.Departments, d.Department) {
		add("department", "department must be one of the configured options")
	}
	if !models.Contains(v.Options.InsuranceTypes, d.InsuranceType) {
		add("insuranceType", "insurance type must be one of the configured options")
	}
	return errs
}

// normalizeAadhaar strips the 4-4-4 grouping separators so both
// "1234-5678-9012" and "1234 5678 9012" validate
func normalizeAadhaar(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}

func checkPassword(pw string) string {
	if len(pw) < 8 {
		return "password must be at least 8 characters"
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return "password needs an uppercase letter, a lowercase letter, a digit and a symbol"
	}
	return ""
}

package crmfill

// Field is a semantic contact field that can be copied into a form.
type Field string

// Fields populated from a selected contact.
const (
	FieldCompanyName       Field = "company_name"
	FieldEmail             Field = "email"
	FieldPhone             Field = "phone"
	FieldBankAddress       Field = "bank_address"
	FieldBankCity          Field = "bank_city"
	FieldBankState         Field = "bank_state"
	FieldBankZip           Field = "bank_zip"
	FieldAccountHolderName Field = "account_holder_name"
)

// FieldMapping maps semantic fields to form field identifiers.
// A field mapped to an empty identifier is never written.
type FieldMapping map[Field]string

// DefaultFieldMapping returns the field identifiers used by the standard
// EFT and customer setup forms.
func DefaultFieldMapping() FieldMapping {
	return FieldMapping{
		FieldCompanyName:       "company-name",
		FieldEmail:             "customer-email",
		FieldPhone:             "customer-phone",
		FieldBankAddress:       "bank-address",
		FieldBankCity:          "bank-city",
		FieldBankState:         "bank-state",
		FieldBankZip:           "bank-zip",
		FieldAccountHolderName: "account-holder",
	}
}

// Merge returns a copy of m with the entries of overrides applied on top.
// Neither m nor overrides is modified.
func (m FieldMapping) Merge(overrides FieldMapping) FieldMapping {
	merged := make(FieldMapping, len(m)+len(overrides))
	for f, id := range m {
		merged[f] = id
	}
	for f, id := range overrides {
		merged[f] = id
	}
	return merged
}

// DefaultProtectedFields returns the identifiers of manually entered fields
// that clearing the widget must leave alone.
func DefaultProtectedFields() []string {
	return []string{"initiated-by", "notes", "authorized-by-name", "authorized-by-title"}
}

// Form is the host form the widget populates.
type Form interface {
	// FieldIDs returns the identifiers of every input, select and textarea
	// that has one, in document order.
	FieldIDs() []string

	// Value returns the current value of a field.
	// Returns ENOTFOUND if no field has the identifier.
	Value(id string) (string, error)

	// SetValue replaces the value of a field.
	// Returns ENOTFOUND if no field has the identifier.
	SetValue(id, value string) error
}

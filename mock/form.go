package mock

import "github.com/fwojciec/crmfill"

var _ crmfill.Form = (*Form)(nil)

// Form is a mock implementation of crmfill.Form.
type Form struct {
	FieldIDsFn func() []string
	ValueFn    func(id string) (string, error)
	SetValueFn func(id, value string) error
}

func (f *Form) FieldIDs() []string {
	return f.FieldIDsFn()
}

func (f *Form) Value(id string) (string, error) {
	return f.ValueFn(id)
}

func (f *Form) SetValue(id, value string) error {
	return f.SetValueFn(id, value)
}

package mock

import "github.com/fwojciec/crmfill"

var _ crmfill.View = (*View)(nil)

// View is a mock implementation of crmfill.View.
type View struct {
	SetSearchTextFn func(text string) error
	ShowStatusFn    func(status crmfill.Status) error
	HideStatusFn    func() error
	ShowResultsFn   func(contacts []*crmfill.Contact) error
	HideResultsFn   func() error
}

func (v *View) SetSearchText(text string) error {
	return v.SetSearchTextFn(text)
}

func (v *View) ShowStatus(status crmfill.Status) error {
	return v.ShowStatusFn(status)
}

func (v *View) HideStatus() error {
	return v.HideStatusFn()
}

func (v *View) ShowResults(contacts []*crmfill.Contact) error {
	return v.ShowResultsFn(contacts)
}

func (v *View) HideResults() error {
	return v.HideResultsFn()
}

// Package autocomplete implements the search-and-select interaction of the
// CRM widget: debounced directory searches, result selection, populating the
// host form and clearing it again.
package autocomplete

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/crmfill"
)

// DefaultQuietPeriod is how long input must stay unchanged before a search
// is dispatched.
const DefaultQuietPeriod = 300 * time.Millisecond

// DefaultMinQueryLength is the shortest trimmed query that triggers a search.
const DefaultMinQueryLength = 2

// Status messages shown in the banner.
const (
	MessageSearching     = "Searching CRM..."
	MessageSearchFailed  = "Search failed. Please try again."
	MessageSearchErrored = "Search error. Please try again."
)

// Config configures a Controller. The zero value is usable.
type Config struct {
	// FieldMappings overrides entries of crmfill.DefaultFieldMapping.
	FieldMappings crmfill.FieldMapping

	// ProtectedFields are left untouched by ClearData.
	// Defaults to crmfill.DefaultProtectedFields when nil.
	ProtectedFields []string

	// OnContactSelected is called after a contact has been copied into the form.
	OnContactSelected func(contact *crmfill.Contact)

	// OnDataCleared is called after ClearData.
	OnDataCleared func()

	QuietPeriod    time.Duration
	MinQueryLength int
	Limit          int

	Logger *slog.Logger
}

// Controller drives the widget. It is safe for concurrent use: the debounce
// timer and directory responses arrive on their own goroutines.
type Controller struct {
	directory crmfill.DirectoryService
	form      crmfill.Form
	view      crmfill.View

	fields     crmfill.FieldMapping
	protected  map[string]bool
	quiet      time.Duration
	minLen     int
	limit      int
	onSelected func(*crmfill.Contact)
	onCleared  func()
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	timer    *time.Timer
	pending  uint64 // generation of the scheduled search
	seq      uint64 // sequence number of the latest dispatched search
	loading  bool   // the loading banner is shown
	results  []*crmfill.Contact
	selected *crmfill.Contact
	closed   bool
}

// New returns a Controller searching directory and populating form.
// Close must be called to stop a pending search.
func New(directory crmfill.DirectoryService, form crmfill.Form, view crmfill.View, cfg Config) *Controller {
	c := &Controller{
		directory:  directory,
		form:       form,
		view:       view,
		fields:     crmfill.DefaultFieldMapping().Merge(cfg.FieldMappings),
		protected:  make(map[string]bool),
		quiet:      cfg.QuietPeriod,
		minLen:     cfg.MinQueryLength,
		limit:      cfg.Limit,
		onSelected: cfg.OnContactSelected,
		onCleared:  cfg.OnDataCleared,
		logger:     cfg.Logger,
	}

	if c.quiet <= 0 {
		c.quiet = DefaultQuietPeriod
	}
	if c.minLen <= 0 {
		c.minLen = DefaultMinQueryLength
	}
	if c.limit <= 0 {
		c.limit = crmfill.DefaultSearchLimit
	}
	if c.onSelected == nil {
		c.onSelected = func(*crmfill.Contact) {}
	}
	if c.onCleared == nil {
		c.onCleared = func() {}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	protected := cfg.ProtectedFields
	if protected == nil {
		protected = crmfill.DefaultProtectedFields()
	}
	for _, id := range protected {
		c.protected[id] = true
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

// OnInputChanged handles a change of the search box text. Queries shorter
// than the minimum length return the widget to idle, hiding the result list
// and discarding any search in flight; longer ones are searched
// once the input has been quiet for the quiet period. Every call replaces
// the previously scheduled search.
func (c *Controller) OnInputChanged(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.stopTimer()

	query := strings.TrimSpace(text)
	if utf8.RuneCountInString(query) < c.minLen {
		// Back to idle: a search still in flight must not reopen the list.
		c.seq++
		c.hideResults()
		if c.loading {
			c.hideStatus()
		}
		return
	}

	gen := c.pending
	c.timer = time.AfterFunc(c.quiet, func() { c.fire(gen, query) })
}

// fire runs the search scheduled as generation gen, unless it has been
// superseded since.
func (c *Controller) fire(gen uint64, query string) {
	c.mu.Lock()
	if c.closed || gen != c.pending {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	c.ExecuteSearch(c.ctx, query)
}

// stopTimer cancels the scheduled search. Must be called with mu held.
func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	// A timer that already fired is waiting on mu; bumping the generation
	// makes it a no-op.
	c.pending++
}

// ExecuteSearch searches the directory for query and renders the outcome.
// Only the most recently dispatched search may update the view; responses
// to earlier searches are discarded.
func (c *Controller) ExecuteSearch(ctx context.Context, query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.showStatus(crmfill.Status{Kind: crmfill.StatusLoading, Message: MessageSearching})
	c.mu.Unlock()

	contacts, err := c.directory.SearchContacts(ctx, crmfill.SearchRequest{Query: query, Limit: c.limit})

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq != c.seq {
		c.logger.Debug("discarding stale search", "query", query, "seq", seq)
		return
	}

	if err != nil {
		c.logger.Warn("contact search failed", "query", query, "err", err)
		c.results = nil
		c.hideResults()
		c.showStatus(crmfill.Status{Kind: crmfill.StatusError, Message: failureMessage(err)})
		return
	}

	c.results = contacts
	if err := c.view.ShowResults(contacts); err != nil {
		c.logger.Debug("rendering results", "err", err)
	}
	c.hideStatus()
}

// failureMessage distinguishes a directory that answered with a failure
// from one that could not be reached or understood.
func failureMessage(err error) string {
	if crmfill.ErrorCode(err) == crmfill.EUNAVAILABLE {
		return MessageSearchFailed
	}
	return MessageSearchErrored
}

// SelectResult selects the contact rendered at index in the current result
// list. It reports false if no contact is rendered at index.
func (c *Controller) SelectResult(index int) bool {
	c.mu.Lock()
	if index < 0 || index >= len(c.results) {
		c.mu.Unlock()
		return false
	}
	contact := c.results[index]
	c.mu.Unlock()

	c.SelectContact(contact)
	return true
}

// SelectContact makes contact the selected contact, copies it into the form
// and shows it in the search box.
func (c *Controller) SelectContact(contact *crmfill.Contact) {
	if contact == nil {
		return
	}

	c.mu.Lock()
	// A search still in flight must not reopen the list.
	c.seq++
	c.selected = contact
	c.populate(contact)
	c.hideResults()
	c.setSearchText(contact.Label())
	c.showStatus(crmfill.Status{
		Kind:      crmfill.StatusFound,
		Message:   "Found: " + contact.Label(),
		Clearable: true,
	})
	c.mu.Unlock()

	c.onSelected(contact)
}

// PopulateForm copies contact into the form and notifies OnContactSelected.
// Empty contact values never overwrite a field.
func (c *Controller) PopulateForm(contact *crmfill.Contact) {
	if contact == nil {
		return
	}

	c.mu.Lock()
	c.populate(contact)
	c.mu.Unlock()

	c.onSelected(contact)
}

// populate writes contact into the form. Must be called with mu held.
func (c *Controller) populate(contact *crmfill.Contact) {
	c.setField(crmfill.FieldCompanyName, contact.CompanyName)
	c.setField(crmfill.FieldEmail, contact.Email)
	c.setField(crmfill.FieldPhone, contact.Phone)

	if contact.Address != "" {
		addr := crmfill.ParseAddress(contact.Address)
		c.setField(crmfill.FieldBankAddress, addr.Street)
		c.setField(crmfill.FieldBankCity, addr.City)
		c.setField(crmfill.FieldBankState, addr.State)
		c.setField(crmfill.FieldBankZip, addr.Zip)
	}

	c.setField(crmfill.FieldAccountHolderName, contact.CompanyName)
}

// setField writes value to the form field mapped to f. Empty values and
// unmapped or missing fields are skipped.
func (c *Controller) setField(f crmfill.Field, value string) {
	id := c.fields[f]
	if id == "" || value == "" {
		return
	}
	if err := c.form.SetValue(id, value); err != nil && crmfill.ErrorCode(err) != crmfill.ENOTFOUND {
		c.logger.Debug("setting form field", "field", id, "err", err)
	}
}

// ClearData forgets the selected contact, blanks the search box and every
// form field except the protected ones, and notifies OnDataCleared.
func (c *Controller) ClearData() {
	c.mu.Lock()
	c.stopTimer()
	c.seq++
	c.selected = nil
	c.setSearchText("")
	c.hideStatus()

	for _, id := range c.form.FieldIDs() {
		if c.protected[id] {
			continue
		}
		if err := c.form.SetValue(id, ""); err != nil && crmfill.ErrorCode(err) != crmfill.ENOTFOUND {
			c.logger.Debug("clearing form field", "field", id, "err", err)
		}
	}
	c.mu.Unlock()

	c.onCleared()
}

// Dismiss handles a pointer interaction. Interactions outside the widget
// hide the result list; selection and status are kept.
func (c *Controller) Dismiss(insideWidget bool) {
	if insideWidget {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideResults()
}

// Selected returns the selected contact, or nil.
func (c *Controller) Selected() *crmfill.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Results returns the contacts currently rendered in the result list.
func (c *Controller) Results() []*crmfill.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*crmfill.Contact(nil), c.results...)
}

// Close stops any scheduled search and cancels searches in flight.
// Close is safe to call multiple times.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.stopTimer()
	c.cancel()
	return nil
}

func (c *Controller) setSearchText(text string) {
	if err := c.view.SetSearchText(text); err != nil {
		c.logger.Debug("setting search text", "err", err)
	}
}

func (c *Controller) showStatus(status crmfill.Status) {
	c.loading = status.Kind == crmfill.StatusLoading
	if err := c.view.ShowStatus(status); err != nil {
		c.logger.Debug("showing status", "kind", status.Kind, "err", err)
	}
}

func (c *Controller) hideStatus() {
	c.loading = false
	if err := c.view.HideStatus(); err != nil {
		c.logger.Debug("hiding status", "err", err)
	}
}

func (c *Controller) hideResults() {
	if err := c.view.HideResults(); err != nil {
		c.logger.Debug("hiding results", "err", err)
	}
}

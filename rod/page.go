package rod

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/fwojciec/crmfill"
	"github.com/go-rod/rod"
	"github.com/ysmood/gson"
)

// Ensure Page implements crmfill.Form and crmfill.View.
var (
	_ crmfill.Form = (*Page)(nil)
	_ crmfill.View = (*Page)(nil)
)

// BindingName is the window function through which page events reach Go.
const BindingName = "crmfillEvent"

// Handler receives the widget's page events. *autocomplete.Controller
// implements it.
type Handler interface {
	OnInputChanged(text string)
	SelectResult(index int) bool
	ClearData()
	Dismiss(insideWidget bool)
}

// Scripts evaluated in the page. Each is a function taking its arguments
// from Eval.
const (
	jsFieldIDs = `() => Array.from(document.querySelectorAll('input, select, textarea'))
		.map((el) => el.id).filter((id) => id !== '')`

	jsValue = `(id) => {
		const el = document.getElementById(id);
		if (!el || !['INPUT', 'SELECT', 'TEXTAREA'].includes(el.tagName)) return null;
		return el.value;
	}`

	jsSetValue = `(id, value) => {
		const el = document.getElementById(id);
		if (!el || !['INPUT', 'SELECT', 'TEXTAREA'].includes(el.tagName)) return false;
		el.value = value;
		return true;
	}`

	jsShow = `(id, className, html) => {
		const el = document.getElementById(id);
		if (!el) return;
		if (className !== '') el.className = className;
		el.innerHTML = html;
		el.style.display = 'block';
	}`

	jsHide = `(id) => {
		const el = document.getElementById(id);
		if (el) el.style.display = 'none';
	}`

	jsVisible = `(id) => {
		const el = document.getElementById(id);
		return !!el && el.style.display === 'block';
	}`

	jsInjectAssets = `(marker, css) => {
		if (document.getElementById(marker)) return false;
		const style = document.createElement('style');
		style.id = marker;
		style.textContent = css;
		document.head.appendChild(style);
		return true;
	}`

	jsInjectWidget = `(inputID, html) => {
		if (document.getElementById(inputID)) return false;
		const target = document.querySelector('form') || document.body;
		target.insertAdjacentHTML('afterbegin', html);
		return true;
	}`

	jsBind = `(binding, inputID, resultsID, statusID, boundary, indexAttr, actionAttr) => {
		const send = (event) => window[binding](event);
		const input = document.getElementById(inputID);
		if (input) {
			input.addEventListener('input', (e) => send({type: 'input', value: e.target.value}));
		}
		const results = document.getElementById(resultsID);
		if (results) {
			results.addEventListener('click', (e) => {
				const item = e.target.closest('[' + indexAttr + ']');
				if (item) send({type: 'select', index: Number(item.getAttribute(indexAttr))});
			});
		}
		const status = document.getElementById(statusID);
		if (status) {
			status.addEventListener('click', (e) => {
				if (e.target.closest('[' + actionAttr + '="clear"]')) send({type: 'clear'});
			});
		}
		document.addEventListener('click', (e) => {
			send({type: 'dismiss', inside: !!e.target.closest('.' + boundary)});
		});
	}`
)

// Page is a live browser tab acting as the host form and the widget chrome.
type Page struct {
	page *rod.Page
	ids  crmfill.ElementIDs

	mu   sync.Mutex
	stop func() error
}

// NewPage wraps a rod page. Empty entries of ids fall back to
// crmfill.DefaultElementIDs.
func NewPage(page *rod.Page, ids crmfill.ElementIDs) *Page {
	return &Page{page: page, ids: ids.WithDefaults()}
}

// Rod returns the underlying rod page.
func (p *Page) Rod() *rod.Page {
	return p.page
}

// HTML returns the current document.
func (p *Page) HTML() (string, error) {
	return p.page.HTML()
}

// InjectAssets adds the widget stylesheet to the document head unless a
// previous injection left its marker. It reports whether it injected.
func (p *Page) InjectAssets() (bool, error) {
	res, err := p.page.Eval(jsInjectAssets, crmfill.StyleMarkerID, crmfill.Stylesheet())
	if err != nil {
		return false, fmt.Errorf("injecting stylesheet: %w", err)
	}
	return res.Value.Bool(), nil
}

// InjectWidget inserts the widget fragment at the top of the first form, or
// of the body if the page has no form. Pages that already have a search
// input are left alone. It reports whether it injected.
func (p *Page) InjectWidget() (bool, error) {
	var buf bytes.Buffer
	if err := crmfill.RenderWidget(&buf, p.ids); err != nil {
		return false, err
	}

	res, err := p.page.Eval(jsInjectWidget, p.ids.SearchInput, buf.String())
	if err != nil {
		return false, fmt.Errorf("injecting widget: %w", err)
	}
	return res.Value.Bool(), nil
}

// Bind forwards the widget's page events to h: typing in the search box,
// clicking a result, clicking the clear control and clicking anywhere in
// the document. Listeners are attached to the current document only.
// Call Unbind to stop forwarding.
func (p *Page) Bind(h Handler) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		return crmfill.Errorf(crmfill.EINVALID, "page is already bound")
	}

	stop, err := p.page.Expose(BindingName, func(event gson.JSON) (any, error) {
		dispatch(h, event)
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("exposing %s: %w", BindingName, err)
	}

	_, err = p.page.Eval(jsBind,
		BindingName,
		p.ids.SearchInput,
		p.ids.SearchResults,
		p.ids.Status,
		crmfill.WidgetBoundaryClass,
		crmfill.ResultIndexAttr,
		crmfill.ClearActionAttr,
	)
	if err != nil {
		_ = stop()
		return fmt.Errorf("attaching listeners: %w", err)
	}

	p.stop = stop
	return nil
}

// Unbind stops forwarding page events. It is a no-op if the page is not
// bound.
func (p *Page) Unbind() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop == nil {
		return nil
	}
	err := p.stop()
	p.stop = nil
	return err
}

// dispatch routes one page event to h.
func dispatch(h Handler, event gson.JSON) {
	switch event.Get("type").Str() {
	case "input":
		h.OnInputChanged(event.Get("value").Str())
	case "select":
		h.SelectResult(event.Get("index").Int())
	case "clear":
		h.ClearData()
	case "dismiss":
		h.Dismiss(event.Get("inside").Bool())
	}
}

// FieldIDs returns the identifiers of every input, select and textarea
// that has one, in document order. A page that cannot be evaluated has no
// fields.
func (p *Page) FieldIDs() []string {
	res, err := p.page.Eval(jsFieldIDs)
	if err != nil {
		return nil
	}

	var ids []string
	for _, id := range res.Value.Arr() {
		ids = append(ids, id.Str())
	}
	return ids
}

// Value returns the current value of a field.
func (p *Page) Value(id string) (string, error) {
	res, err := p.page.Eval(jsValue, id)
	if err != nil {
		return "", fmt.Errorf("reading field %q: %w", id, err)
	}
	if res.Value.Nil() {
		return "", crmfill.Errorf(crmfill.ENOTFOUND, "field %q not found", id)
	}
	return res.Value.Str(), nil
}

// SetValue replaces the value of a field. No input or change event is
// dispatched.
func (p *Page) SetValue(id, value string) error {
	res, err := p.page.Eval(jsSetValue, id, value)
	if err != nil {
		return fmt.Errorf("setting field %q: %w", id, err)
	}
	if !res.Value.Bool() {
		return crmfill.Errorf(crmfill.ENOTFOUND, "field %q not found", id)
	}
	return nil
}

// SetSearchText replaces the text of the search box.
func (p *Page) SetSearchText(text string) error {
	err := p.SetValue(p.ids.SearchInput, text)
	if crmfill.ErrorCode(err) == crmfill.ENOTFOUND {
		return nil
	}
	return err
}

// ShowStatus fills and displays the status banner.
func (p *Page) ShowStatus(status crmfill.Status) error {
	var buf bytes.Buffer
	if err := crmfill.RenderStatus(&buf, status); err != nil {
		return err
	}
	return p.show(p.ids.Status, crmfill.StatusClass(status.Kind), buf.String())
}

// HideStatus hides the status banner.
func (p *Page) HideStatus() error {
	return p.hide(p.ids.Status)
}

// StatusVisible reports whether the status banner is displayed.
func (p *Page) StatusVisible() (bool, error) {
	return p.visible(p.ids.Status)
}

// ShowResults renders contacts into the result list and displays it.
func (p *Page) ShowResults(contacts []*crmfill.Contact) error {
	var buf bytes.Buffer
	if err := crmfill.RenderResults(&buf, contacts); err != nil {
		return err
	}
	return p.show(p.ids.SearchResults, "", buf.String())
}

// HideResults hides the result list.
func (p *Page) HideResults() error {
	return p.hide(p.ids.SearchResults)
}

// ResultsVisible reports whether the result list is displayed.
func (p *Page) ResultsVisible() (bool, error) {
	return p.visible(p.ids.SearchResults)
}

func (p *Page) show(id, className, html string) error {
	if _, err := p.page.Eval(jsShow, id, className, html); err != nil {
		return fmt.Errorf("showing %q: %w", id, err)
	}
	return nil
}

func (p *Page) hide(id string) error {
	if _, err := p.page.Eval(jsHide, id); err != nil {
		return fmt.Errorf("hiding %q: %w", id, err)
	}
	return nil
}

func (p *Page) visible(id string) (bool, error) {
	res, err := p.page.Eval(jsVisible, id)
	if err != nil {
		return false, fmt.Errorf("inspecting %q: %w", id, err)
	}
	return res.Value.Bool(), nil
}

// Close unbinds the page and closes its tab.
func (p *Page) Close() error {
	_ = p.Unbind()
	return p.page.Close()
}

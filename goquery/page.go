// Package goquery implements crmfill.Form and crmfill.View over a static
// HTML document.
package goquery

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/crmfill"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Page implements crmfill.Form and crmfill.View.
var (
	_ crmfill.Form = (*Page)(nil)
	_ crmfill.View = (*Page)(nil)
)

// Page is an HTML document acting as the host form and the widget chrome.
// Field values live in the markup: the value attribute of inputs, the text
// of textareas and the selected option of selects. Page is safe for
// concurrent use.
type Page struct {
	mu  sync.Mutex
	doc *goquery.Document
	ids crmfill.ElementIDs
}

// NewPage parses an HTML document. Empty entries of ids fall back to
// crmfill.DefaultElementIDs.
func NewPage(r io.Reader, ids crmfill.ElementIDs) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, crmfill.Errorf(crmfill.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{doc: doc, ids: ids.WithDefaults()}, nil
}

// ParsePage is like NewPage for a string.
func ParsePage(s string, ids crmfill.ElementIDs) (*Page, error) {
	return NewPage(strings.NewReader(s), ids)
}

// HTML returns the current document.
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Html()
}

// InjectAssets adds the widget stylesheet to the document head unless a
// previous injection left its marker. It reports whether it injected.
func (p *Page) InjectAssets() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.byID(crmfill.StyleMarkerID).Length() > 0 {
		return false
	}

	target := p.doc.Find("head").First()
	if target.Length() == 0 {
		target = p.doc.Find("body").First()
	}
	target.AppendHtml(`<style id="` + crmfill.StyleMarkerID + `">` + crmfill.Stylesheet() + `</style>`)
	return true
}

// InjectWidget inserts the widget fragment at the top of the first form, or
// of the body if the document has no form. Documents that already have a
// search input are left alone. It reports whether it injected.
func (p *Page) InjectWidget() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.byID(p.ids.SearchInput).Length() > 0 {
		return false, nil
	}

	var buf bytes.Buffer
	if err := crmfill.RenderWidget(&buf, p.ids); err != nil {
		return false, err
	}

	target := p.doc.Find("form").First()
	if target.Length() == 0 {
		target = p.doc.Find("body").First()
	}
	target.PrependHtml(buf.String())
	return true, nil
}

// FieldIDs returns the identifiers of every input, select and textarea
// that has one, in document order.
func (p *Page) FieldIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var ids []string
	p.doc.Find("input, select, textarea").Each(func(_ int, sel *goquery.Selection) {
		if id, ok := sel.Attr("id"); ok && id != "" {
			ids = append(ids, id)
		}
	})
	return ids
}

// Value returns the current value of a field.
func (p *Page) Value(id string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	field, err := p.field(id)
	if err != nil {
		return "", err
	}

	switch field.Get(0).DataAtom {
	case atom.Textarea:
		return field.Text(), nil
	case atom.Select:
		option := field.Find("option[selected]").First()
		if option.Length() == 0 {
			option = field.Find("option").First()
		}
		return optionValue(option), nil
	default:
		return field.AttrOr("value", ""), nil
	}
}

// SetValue replaces the value of a field. Setting a select to a value none
// of its options carry deselects every option.
func (p *Page) SetValue(id, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	field, err := p.field(id)
	if err != nil {
		return err
	}

	switch field.Get(0).DataAtom {
	case atom.Textarea:
		field.SetText(value)
	case atom.Select:
		matched := false
		field.Find("option").Each(func(_ int, option *goquery.Selection) {
			if !matched && optionValue(option) == value {
				option.SetAttr("selected", "")
				matched = true
				return
			}
			option.RemoveAttr("selected")
		})
	default:
		field.SetAttr("value", value)
	}
	return nil
}

// SearchText returns the text of the search box.
func (p *Page) SearchText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byID(p.ids.SearchInput).AttrOr("value", "")
}

// SetSearchText replaces the text of the search box.
func (p *Page) SetSearchText(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID(p.ids.SearchInput).SetAttr("value", text)
	return nil
}

// ShowStatus fills and displays the status banner.
func (p *Page) ShowStatus(status crmfill.Status) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	banner := p.byID(p.ids.Status)
	if banner.Length() == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := crmfill.RenderStatus(&buf, status); err != nil {
		return err
	}
	banner.SetAttr("class", crmfill.StatusClass(status.Kind))
	banner.SetHtml(buf.String())
	setDisplay(banner, "block")
	return nil
}

// HideStatus hides the status banner.
func (p *Page) HideStatus() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	setDisplay(p.byID(p.ids.Status), "none")
	return nil
}

// StatusVisible reports whether the status banner is displayed.
func (p *Page) StatusVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return display(p.byID(p.ids.Status)) == "block"
}

// StatusText returns the text of the status banner.
func (p *Page) StatusText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return strings.TrimSpace(p.byID(p.ids.Status).Text())
}

// ShowResults renders contacts into the result list and displays it.
func (p *Page) ShowResults(contacts []*crmfill.Contact) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	list := p.byID(p.ids.SearchResults)
	if list.Length() == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := crmfill.RenderResults(&buf, contacts); err != nil {
		return err
	}
	list.SetHtml(buf.String())
	setDisplay(list, "block")
	return nil
}

// HideResults hides the result list.
func (p *Page) HideResults() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	setDisplay(p.byID(p.ids.SearchResults), "none")
	return nil
}

// ResultsVisible reports whether the result list is displayed.
func (p *Page) ResultsVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return display(p.byID(p.ids.SearchResults)) == "block"
}

// RenderedResult is one selectable item of the result list.
type RenderedResult struct {
	Index   int
	Name    string
	Company string
	Email   string
}

// RenderedResults returns the selectable items of the result list in
// document order. The "No results found" placeholder is not selectable.
func (p *Page) RenderedResults() []RenderedResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	var results []RenderedResult
	p.byID(p.ids.SearchResults).Find(".search-result").Each(func(_ int, item *goquery.Selection) {
		index, err := strconv.Atoi(item.AttrOr(crmfill.ResultIndexAttr, ""))
		if err != nil {
			return
		}
		results = append(results, RenderedResult{
			Index:   index,
			Name:    strings.TrimSpace(item.Find(".search-result-name").Text()),
			Company: strings.TrimSpace(item.Find(".search-result-company").Text()),
			Email:   strings.TrimSpace(item.Find(".search-result-email").Text()),
		})
	})
	return results
}

// InsideWidget reports whether the element with the given id lies within
// the widget boundary.
func (p *Page) InsideWidget(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byID(id).Closest("." + crmfill.WidgetBoundaryClass).Length() > 0
}

// byID finds the first element whose id attribute equals id. Ids are
// compared verbatim so they never need CSS escaping.
func (p *Page) byID(id string) *goquery.Selection {
	if id == "" {
		return p.doc.Selection.Slice(0, 0)
	}
	return p.doc.Find("[id]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return sel.AttrOr("id", "") == id
	}).First()
}

// field finds the form control with the given id.
func (p *Page) field(id string) (*goquery.Selection, error) {
	sel := p.byID(id)
	if sel.Length() == 0 || !isField(sel.Get(0)) {
		return nil, crmfill.Errorf(crmfill.ENOTFOUND, "field %q not found", id)
	}
	return sel, nil
}

func isField(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Input, atom.Select, atom.Textarea:
		return true
	}
	return false
}

// optionValue returns the value attribute of an option, or its text when
// the attribute is absent.
func optionValue(option *goquery.Selection) string {
	if v, ok := option.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(option.Text())
}

// setDisplay sets the display declaration of sel's inline style, keeping
// the other declarations.
func setDisplay(sel *goquery.Selection, value string) {
	if sel.Length() == 0 {
		return
	}

	var decls []string
	for _, decl := range strings.Split(sel.AttrOr("style", ""), ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" || isDisplay(decl) {
			continue
		}
		decls = append(decls, decl)
	}
	decls = append(decls, "display: "+value)
	sel.SetAttr("style", strings.Join(decls, "; "))
}

// display returns the display declaration of sel's inline style.
func display(sel *goquery.Selection) string {
	var value string
	for _, decl := range strings.Split(sel.AttrOr("style", ""), ";") {
		if isDisplay(decl) {
			_, v, _ := strings.Cut(decl, ":")
			value = strings.TrimSpace(v)
		}
	}
	return value
}

func isDisplay(decl string) bool {
	name, _, ok := strings.Cut(decl, ":")
	return ok && strings.EqualFold(strings.TrimSpace(name), "display")
}

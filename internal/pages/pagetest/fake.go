// Package pagetest provides in-memory stand-ins for playwright pages and
// locators so page objects can be tested without a browser.
//
// Only the methods page objects use are implemented; anything else panics on
// the nil embedded interface.
package pagetest

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

type (
	page    = playwright.Page
	locator = playwright.Locator
)

// Journal records successful interactions in the order they happen, e.g.
// `fill [data-test="firstName"] Jane` or `click #checkout`.
type Journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *Journal) record(format string, args ...interface{}) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

// Entries returns a copy of the recorded interactions.
func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// Index returns the position of entry in the journal or -1.
func (j *Journal) Index(entry string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i, e := range j.entries {
		if e == entry {
			return i
		}
	}
	return -1
}

// Page is a fake playwright.Page serving Elements by selector.
type Page struct {
	page

	Journal *Journal
	// GotoErr is returned from Goto when set.
	GotoErr error
	// WaitErr is returned from WaitForURL when set.
	WaitErr error
	// Waited holds every URL pattern passed to WaitForURL.
	Waited []string

	mu       sync.Mutex
	elements map[string]*Element
}

// NewPage returns an empty fake page.
func NewPage() *Page {
	return &Page{
		Journal:  &Journal{},
		elements: make(map[string]*Element),
	}
}

// Element returns the fake element registered for selector, creating an empty
// one on first use. Tests use it to seed texts and failures.
func (p *Page) Element(selector string) *Element {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.elements[selector]
	if !ok {
		e = &Element{Selector: selector, journal: p.Journal}
		p.elements[selector] = e
	}
	return e
}

// RoleSelector is the key GetByRole registers elements under.
func RoleSelector(role, name string) string {
	return fmt.Sprintf("role=%s[name=%q]", role, name)
}

func (p *Page) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	return p.Element(selector)
}

func (p *Page) GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator {
	name := ""
	if len(options) > 0 {
		if s, ok := options[0].Name.(string); ok {
			name = s
		}
	}
	return p.Element(RoleSelector(string(role), name))
}

func (p *Page) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	if p.GotoErr != nil {
		return nil, p.GotoErr
	}
	p.Journal.record("goto %s", url)
	return nil, nil
}

func (p *Page) WaitForURL(url interface{}, options ...playwright.PageWaitForURLOptions) error {
	if p.WaitErr != nil {
		return p.WaitErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Waited = append(p.Waited, fmt.Sprint(url))
	return nil
}

// Element is a fake playwright.Locator. Texts holds the inner text of every
// matched node; its length is the match count.
type Element struct {
	locator

	Selector string
	Texts    []string

	FillErr  error
	ClickErr error
	CountErr error
	// TextErr fails InnerText for every index >= FailTextAt.
	TextErr    error
	FailTextAt int
	// OnClick runs after every successful click, e.g. to drop a node.
	OnClick func(index int)

	Filled []string
	Clicks int

	journal *Journal
}

func (e *Element) Fill(value string, options ...playwright.LocatorFillOptions) error {
	if e.FillErr != nil {
		return e.FillErr
	}
	e.Filled = append(e.Filled, value)
	e.journal.record("fill %s %s", e.Selector, value)
	return nil
}

func (e *Element) Click(options ...playwright.LocatorClickOptions) error {
	return e.clickAt(0)
}

func (e *Element) Count() (int, error) {
	if e.CountErr != nil {
		return 0, e.CountErr
	}
	return len(e.Texts), nil
}

func (e *Element) Nth(index int) playwright.Locator {
	return &nth{parent: e, index: index}
}

func (e *Element) First() playwright.Locator {
	return e.Nth(0)
}

func (e *Element) InnerText(options ...playwright.LocatorInnerTextOptions) (string, error) {
	return e.textAt(0)
}

func (e *Element) clickAt(index int) error {
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.Clicks++
	e.journal.record("click %s", e.Selector)
	if e.OnClick != nil {
		e.OnClick(index)
	}
	return nil
}

func (e *Element) textAt(index int) (string, error) {
	if e.TextErr != nil && index >= e.FailTextAt {
		return "", e.TextErr
	}
	if index >= len(e.Texts) {
		return "", fmt.Errorf("%s: no element at index %d", e.Selector, index)
	}
	return e.Texts[index], nil
}

// nth narrows an Element to one match.
type nth struct {
	locator

	parent *Element
	index  int
}

func (n *nth) Click(options ...playwright.LocatorClickOptions) error {
	return n.parent.clickAt(n.index)
}

func (n *nth) InnerText(options ...playwright.LocatorInnerTextOptions) (string, error) {
	return n.parent.textAt(n.index)
}

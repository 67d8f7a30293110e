// Package browser - page interaction utilities
package browser

import (
	"errors"
	"time"

	"github.com/go-rod/rod"
	"github.com/rs/zerolog"
)

// ErrElementNotFound is returned when an element lookup matches nothing.
var ErrElementNotFound = errors.New("element not found")

// PageHelper provides the page-readiness and element-settling utilities
// Browser uses around navigation and element discovery, kept separate from
// Browser itself since the cursor engine never needs them directly.
type PageHelper struct {
	logger zerolog.Logger
}

// NewPageHelper creates a new page helper
func NewPageHelper(logger zerolog.Logger) *PageHelper {
	return &PageHelper{
		logger: logger.With().Str("component", "pagehelper").Logger(),
	}
}

// WaitForElementStable waits for element to be stable (not moving), the
// precondition the cursor engine's element-bound geometry queries rely on.
func (p *PageHelper) WaitForElementStable(element *rod.Element, timeout time.Duration) error {
	element = element.Timeout(timeout)
	defer element.CancelTimeout()

	return element.WaitStable(200 * time.Millisecond)
}

// GetAllElements gets all elements matching a selector
func (p *PageHelper) GetAllElements(page *rod.Page, selector string) ([]*rod.Element, error) {
	elements, err := page.Elements(selector)
	if err != nil {
		return nil, err
	}
	return elements, nil
}

// WaitForNavigation waits for page navigation to complete
func (p *PageHelper) WaitForNavigation(page *rod.Page, timeout time.Duration) error {
	page = page.Timeout(timeout)
	defer page.CancelTimeout()

	// Wait for load event
	if err := page.WaitLoad(); err != nil {
		return err
	}

	// Wait for DOM to stabilize
	page.WaitDOMStable(time.Second, 0.1)

	return nil
}

// WaitForNetworkIdle waits until network is idle
func (p *PageHelper) WaitForNetworkIdle(page *rod.Page, timeout time.Duration) error {
	page = page.Timeout(timeout)
	defer page.CancelTimeout()

	wait := page.WaitRequestIdle(time.Second, nil, nil, nil)
	wait()

	return nil
}

// ScrollToElement scrolls the page to make an element visible
func (p *PageHelper) ScrollToElement(page *rod.Page, element *rod.Element) error {
	return element.ScrollIntoView()
}

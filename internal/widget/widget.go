// Package widget holds the small stateful pieces of the page: expandable
// cards, the project carousel, the navigation bar and the project modal.
package widget

// Accordion tracks which card of a list is expanded. At most one is.
type Accordion struct {
	n        int
	expanded int
}

// NewAccordion returns an accordion over n cards with the first expanded.
func NewAccordion(n int) *Accordion {
	a := &Accordion{n: n, expanded: -1}
	if n > 0 {
		a.expanded = 0
	}
	return a
}

// Toggle collapses card i if it is expanded, otherwise expands it.
func (a *Accordion) Toggle(i int) {
	if i < 0 || i >= a.n {
		return
	}
	if a.expanded == i {
		a.expanded = -1
		return
	}
	a.expanded = i
}

// Expanded returns the expanded card, if any.
func (a *Accordion) Expanded() (int, bool) { return a.expanded, a.expanded >= 0 }

func (a *Accordion) IsExpanded(i int) bool { return i >= 0 && i == a.expanded }

const (
	// CardFraction is the card width relative to the viewport.
	CardFraction = 0.85
	// CardGap is the space between carousel cards in pixels.
	CardGap = 32
)

// CarouselStep is the scroll distance from one card to the next for a
// viewport of the given width.
func CarouselStep(viewport float64) float64 {
	if viewport <= 0 {
		return 0
	}
	return viewport*CardFraction + CardGap
}

// NavScrolledAfter is the scroll offset past which the navigation bar gets
// its solid background.
const NavScrolledAfter = 20

func NavScrolled(scrollY float64) bool { return scrollY > NavScrolledAfter }

// NavItem is an entry of the floating dock.
type NavItem struct {
	Title string
	Href  string
}

// NavItems are the pages of the multi-page variant.
var NavItems = []NavItem{
	{Title: "Home", Href: "/"},
	{Title: "Projects", Href: "/projects"},
	{Title: "Experience", Href: "/experience"},
	{Title: "Organizations", Href: "/organizations"},
}

//go:build js && wasm

// Command sitewasm runs the interactive parts of the portfolio in the
// browser: fade-in sections, the hero text effect, theme toggle, the
// accordions, the project carousel and the project modal with its
// slideshow.
package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"syscall/js"

	"github.com/devpradp/portfolio/internal/dom"
	"github.com/devpradp/portfolio/internal/eventloop"
	"github.com/devpradp/portfolio/internal/inview"
	"github.com/devpradp/portfolio/internal/scramble"
	"github.com/devpradp/portfolio/internal/theme"
	"github.com/devpradp/portfolio/internal/widget"
)

const themeStorageKey = "theme"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	loop := eventloop.New(256)
	loop.Post(func() { setup(loop, logger) })

	if err := loop.Run(context.Background()); err != nil {
		logger.Error("event loop stopped", "err", err)
	}
}

func setup(loop *eventloop.Loop, logger *slog.Logger) {
	root := dom.Document.Get("documentElement")
	dom.SetClass(root, "js", true)

	setupTheme(loop, root, logger)
	setupInView(loop, logger)
	setupScramble(loop)
	setupNav(loop)
	for _, el := range dom.QueryAll(dom.Document, "[data-accordion]") {
		setupAccordion(loop, el)
	}
	for _, el := range dom.QueryAll(dom.Document, "[data-carousel]") {
		setupCarousel(loop, el)
	}
	if el := dom.Query(dom.Document, "[data-modal]"); dom.Present(el) {
		newProjectModal(loop, el, logger).bind()
	}
}

func setupTheme(loop *eventloop.Loop, root js.Value, logger *slog.Logger) {
	cookie := root.Get("dataset").Get("themeCookie")
	store := dom.ThemeStore{Key: themeStorageKey}
	if cookie.Type() == js.TypeString {
		store.Cookie = cookie.String()
	}

	m := theme.NewManager(store, dom.SystemTheme)
	apply := func(t theme.Theme) {
		dom.SetClass(root, string(theme.Light), t == theme.Light)
		dom.SetClass(root, string(theme.Dark), t == theme.Dark)
	}
	t, err := m.Init()
	if err != nil {
		logger.Warn("theme preference unavailable", "err", err)
	}
	apply(t)
	m.Subscribe(apply)

	for _, form := range dom.QueryAll(dom.Document, "[data-theme-toggle]") {
		dom.ListenPrevent(loop, form, "submit", func(js.Value) bool { return true }, func(js.Value) {
			if _, err := m.Toggle(); err != nil {
				logger.Warn("theme not saved", "err", err)
			}
		})
	}
}

func setupInView(loop *eventloop.Loop, logger *slog.Logger) {
	reg := inview.NewRegistry(loop, dom.NewIntersectionSource(loop), inview.WithLogger(logger))
	for _, el := range dom.QueryAll(dom.Document, "[data-inview]") {
		var opts []inview.Option
		if v := el.Call("getAttribute", "data-inview"); v.Type() == js.TypeString && v.String() != "" {
			if threshold, err := strconv.ParseFloat(v.String(), 64); err == nil {
				opts = append(opts, inview.WithThreshold(threshold))
			}
		}
		_, sub := reg.Observe(el, opts...)
		sub.OnChange(func(visible bool) { dom.SetClass(el, "in-view", visible) })
	}
	logger.Debug("observing sections", "count", reg.Len())
}

func setupScramble(loop *eventloop.Loop) {
	for _, el := range dom.QueryAll(dom.Document, "[data-scramble]") {
		fx := scramble.New(loop, el.Get("textContent").String())
		fx.OnFrame(func(text string) { dom.SetText(el, text) })
		fx.Start()
		dom.Listen(loop, el, "mouseenter", func(js.Value) {
			if fx.State() != scramble.Scrambling {
				fx.Start()
			}
		})
	}
}

func setupNav(loop *eventloop.Loop) {
	nav := dom.Query(dom.Document, "[data-nav]")
	if !dom.Present(nav) {
		return
	}
	update := func(js.Value) {
		dom.SetClass(nav, "scrolled", widget.NavScrolled(dom.Window.Get("scrollY").Float()))
	}
	update(js.Undefined())
	dom.Listen(loop, dom.Window, "scroll", update)
}

func setupAccordion(loop *eventloop.Loop, el js.Value) {
	items := dom.QueryAll(el, "[data-accordion-item]")
	acc := widget.NewAccordion(len(items))
	render := func() {
		for i, item := range items {
			open := acc.IsExpanded(i)
			dom.SetClass(item, "expanded", open)
			if header := dom.Query(item, ".card-header"); dom.Present(header) {
				header.Call("setAttribute", "aria-expanded", strconv.FormatBool(open))
			}
		}
	}
	for i, item := range items {
		header := dom.Query(item, ".card-header")
		if !dom.Present(header) {
			continue
		}
		dom.Listen(loop, header, "click", func(js.Value) {
			acc.Toggle(i)
			render()
		})
	}
	render()
}

func setupCarousel(loop *eventloop.Loop, el js.Value) {
	track := dom.Query(el, "[data-carousel-track]")
	if !dom.Present(track) {
		return
	}
	scroll := func(dir float64) func(js.Value) {
		return func(js.Value) {
			opts := js.Global().Get("Object").New()
			opts.Set("left", dir*widget.CarouselStep(track.Get("clientWidth").Float()))
			opts.Set("behavior", "smooth")
			track.Call("scrollBy", opts)
		}
	}
	if prev := dom.Query(el, "[data-carousel-prev]"); dom.Present(prev) {
		dom.Listen(loop, prev, "click", scroll(-1))
	}
	if next := dom.Query(el, "[data-carousel-next]"); dom.Present(next) {
		dom.Listen(loop, next, "click", scroll(1))
	}
}

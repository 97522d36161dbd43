//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"syscall/js"

	"github.com/devpradp/portfolio/internal/content"
	"github.com/devpradp/portfolio/internal/dom"
	"github.com/devpradp/portfolio/internal/eventloop"
	"github.com/devpradp/portfolio/internal/slideshow"
	"github.com/devpradp/portfolio/internal/widget"
)

// projectModal binds widget.Modal to the modal markup.
type projectModal struct {
	loop   *eventloop.Loop
	el     js.Value
	modal  *widget.Modal
	logger *slog.Logger

	slides js.Value
	dots   js.Value

	// Listeners on elements created for the open project.
	slideListeners []*dom.Listener
	cancelShow     func()
}

func newProjectModal(loop *eventloop.Loop, el js.Value, logger *slog.Logger) *projectModal {
	return &projectModal{
		loop:   loop,
		el:     el,
		modal:  widget.NewModal(loop, slideshow.WithLogger(logger)),
		logger: logger,
		slides: dom.Query(el, "[data-slides]"),
		dots:   dom.Query(el, "[data-slide-dots]"),
	}
}

func (pm *projectModal) bind() {
	pm.modal.OnChange(pm.render)

	for _, card := range dom.QueryAll(dom.Document, "[data-project]") {
		slug := card.Get("dataset").Get("project").String()
		open := func(js.Value) { pm.fetch(slug) }
		dom.Listen(pm.loop, card, "click", open)
		dom.ListenPrevent(pm.loop, card, "keydown", func(ev js.Value) bool {
			return ev.Get("key").String() == "Enter"
		}, func(ev js.Value) {
			if ev.Get("key").String() == "Enter" {
				open(ev)
			}
		})
	}
	for _, el := range dom.QueryAll(pm.el, "[data-modal-close]") {
		dom.Listen(pm.loop, el, "click", func(js.Value) { pm.modal.Close() })
	}

	// Arrow keys would scroll the page behind the modal.
	dom.ListenPrevent(pm.loop, dom.Document, "keydown", func(ev js.Value) bool {
		if pm.el.Get("hidden").Bool() {
			return false
		}
		switch ev.Get("key").String() {
		case "ArrowLeft", "ArrowRight":
			return true
		}
		return false
	}, func(ev js.Value) {
		pm.modal.HandleKey(ev.Get("key").String())
	})

	pm.bindControls()
}

func (pm *projectModal) bindControls() {
	withShow := func(fn func(*slideshow.Controller)) func(js.Value) {
		return func(js.Value) {
			if show := pm.modal.Slideshow(); show != nil {
				fn(show)
			}
		}
	}
	listen := func(selector, event string, handler func(js.Value)) {
		if el := dom.Query(pm.el, selector); dom.Present(el) {
			dom.Listen(pm.loop, el, event, handler)
		}
	}

	listen("[data-slide-prev]", "click", withShow((*slideshow.Controller).GoToPrevious))
	listen("[data-slide-next]", "click", withShow((*slideshow.Controller).GoToNext))
	listen("[data-slide-play]", "click", withShow((*slideshow.Controller).TogglePlayPause))
	listen("[data-slide-mute]", "click", withShow((*slideshow.Controller).ToggleMute))
	listen("[data-slideshow]", "mousemove", withShow((*slideshow.Controller).ShowControlsTemporarily))
	listen("[data-slideshow]", "mouseleave", withShow((*slideshow.Controller).HideControls))
	listen("[data-slide-volume]", "input", func(ev js.Value) {
		v, err := strconv.ParseFloat(ev.Get("target").Get("value").String(), 64)
		if err != nil {
			return
		}
		if show := pm.modal.Slideshow(); show != nil {
			show.SetVolume(v)
		}
	})
}

// fetch loads the project off the loop and opens it on the loop.
func (pm *projectModal) fetch(slug string) {
	origin := dom.Window.Get("location").Get("origin").String()
	go func() {
		p, err := loadProject(origin, slug)
		if err != nil {
			pm.loop.Post(func() { pm.logger.Warn("project not loaded", "slug", slug, "err", err) })
			return
		}
		pm.loop.Post(func() { pm.open(p) })
	}()
}

func loadProject(origin, slug string) (content.Project, error) {
	var p content.Project
	resp, err := http.Get(origin + "/api/projects/" + url.PathEscape(slug))
	if err != nil {
		return p, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return p, fmt.Errorf("GET project %s: %s", slug, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return p, fmt.Errorf("decode project %s: %w", slug, err)
	}
	return p, nil
}

func (pm *projectModal) open(p content.Project) {
	pm.teardownSlides()

	players := make(map[int]slideshow.Player)
	for i, md := range p.Media {
		var el js.Value
		if md.Type == string(slideshow.KindVideo) {
			el = dom.Document.Call("createElement", "video")
			el.Set("preload", "auto")
			el.Set("playsInline", true)
			el.Set("muted", true)
			el.Set("loop", true)
			el.Set("src", md.URL)
			players[i] = dom.NewVideo(pm.loop, el)
		} else {
			el = dom.Document.Call("createElement", "img")
			el.Set("src", md.URL)
			el.Set("alt", md.Alt)
		}
		dom.SetHidden(el, true)
		pm.slides.Call("appendChild", el)

		dot := dom.Document.Call("createElement", "button")
		dot.Set("type", "button")
		dot.Call("setAttribute", "aria-label", fmt.Sprintf("Go to slide %d", i+1))
		pm.dots.Call("appendChild", dot)
		pm.slideListeners = append(pm.slideListeners, dom.Listen(pm.loop, dot, "click", func(js.Value) {
			if show := pm.modal.Slideshow(); show != nil {
				show.GoToSlide(i)
			}
		}))
	}

	pm.modal.Open(p, players)
	if show := pm.modal.Slideshow(); show != nil {
		pm.cancelShow = show.OnChange(pm.renderSlides)
		pm.renderSlides(show.Snapshot())
	}
}

func (pm *projectModal) render() {
	p, selected := pm.modal.Selected()
	dom.SetClass(dom.Document.Get("body"), "modal-open", pm.modal.LocksScroll())
	switch {
	case pm.modal.IsOpen():
		dom.SetClass(pm.el, "closing", false)
		dom.SetHidden(pm.el, false)
		pm.fill(p)
	case selected:
		dom.SetClass(pm.el, "closing", true)
		if pm.cancelShow != nil {
			pm.cancelShow()
			pm.cancelShow = nil
		}
	default:
		dom.SetHidden(pm.el, true)
		dom.SetClass(pm.el, "closing", false)
		pm.teardownSlides()
	}
}

func (pm *projectModal) fill(p content.Project) {
	set := func(selector string, fn func(js.Value)) {
		if el := dom.Query(pm.el, selector); dom.Present(el) {
			fn(el)
		}
	}
	set("[data-modal-title]", func(el js.Value) { dom.SetText(el, p.Name) })
	set("[data-modal-tech]", func(el js.Value) { dom.SetList(el, p.Technologies) })
	set("[data-modal-description]", func(el js.Value) { dom.SetList(el, p.Description) })
	set("[data-modal-achievements]", func(el js.Value) { dom.SetList(el, p.Achievements) })
	link := func(el js.Value, href string) {
		el.Set("href", href)
		dom.SetHidden(el, href == "")
	}
	set("[data-modal-github]", func(el js.Value) { link(el, p.GitHub) })
	set("[data-modal-demo]", func(el js.Value) { link(el, p.Demo) })

	slideshowEl := dom.Query(pm.el, "[data-slideshow]")
	if dom.Present(slideshowEl) {
		dom.SetHidden(slideshowEl, len(p.Media) == 0)
	}
}

func (pm *projectModal) renderSlides(s slideshow.Snapshot) {
	children := pm.slides.Get("children")
	for i := 0; i < children.Length(); i++ {
		dom.SetHidden(children.Index(i), i != s.Index)
	}
	dots := pm.dots.Get("children")
	for i := 0; i < dots.Length(); i++ {
		if i == s.Index {
			dots.Index(i).Call("setAttribute", "aria-current", "true")
		} else {
			dots.Index(i).Call("removeAttribute", "aria-current")
		}
	}

	show := pm.modal.Slideshow()
	if label := dom.Query(pm.el, "[data-slide-label]"); dom.Present(label) && show != nil {
		dom.SetText(label, show.Label())
	}
	if controls := dom.Query(pm.el, "[data-slide-controls]"); dom.Present(controls) {
		dom.SetClass(controls, "visible", s.ControlsVisible)
		dom.SetHidden(controls, s.State == slideshow.StateShowingImage || s.State == slideshow.StateIdle)
	}
	if play := dom.Query(pm.el, "[data-slide-play]"); dom.Present(play) {
		if s.Playing {
			dom.SetText(play, "❚❚")
		} else {
			dom.SetText(play, "▶")
		}
	}
	if vol := dom.Query(pm.el, "[data-slide-volume]"); dom.Present(vol) {
		vol.Set("value", s.Volume)
	}
	if mute := dom.Query(pm.el, "[data-slide-mute]"); dom.Present(mute) {
		if s.Volume == 0 {
			dom.SetText(mute, "\U0001f507")
		} else {
			dom.SetText(mute, "\U0001f50a")
		}
	}
}

// teardownSlides drops the slide elements of the previous project. The
// slideshow has already halted its videos by the time this runs.
func (pm *projectModal) teardownSlides() {
	if pm.cancelShow != nil {
		pm.cancelShow()
		pm.cancelShow = nil
	}
	for _, l := range pm.slideListeners {
		l.Release()
	}
	pm.slideListeners = nil
	dom.Clear(pm.slides)
	dom.Clear(pm.dots)
}

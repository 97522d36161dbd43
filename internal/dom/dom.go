//go:build js && wasm

// Package dom adapts the browser to the engines of this module. Every
// JavaScript callback is forwarded to an eventloop.Loop, so engine code
// only ever runs on the loop goroutine.
package dom

import (
	"sync"
	"syscall/js"

	"github.com/devpradp/portfolio/internal/eventloop"
)

var (
	Window   = js.Global().Get("window")
	Document = js.Global().Get("document")
)

// QueryAll returns the elements under root matching selector.
func QueryAll(root js.Value, selector string) []js.Value {
	list := root.Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list.Index(i))
	}
	return out
}

// Query returns the first element under root matching selector, or
// js.Null().
func Query(root js.Value, selector string) js.Value {
	return root.Call("querySelector", selector)
}

// Present reports whether v is an element rather than null or undefined.
func Present(v js.Value) bool { return !v.IsNull() && !v.IsUndefined() }

// Listener is an event listener attached with Listen. Release detaches it
// and frees the Go function; it is idempotent.
type Listener struct {
	once   sync.Once
	target js.Value
	event  string
	fn     js.Func
}

func (l *Listener) Release() {
	l.once.Do(func() {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	})
}

// Listen attaches handler for event on target. The handler runs on loop.
func Listen(loop *eventloop.Loop, target js.Value, event string, handler func(ev js.Value)) *Listener {
	return ListenPrevent(loop, target, event, nil, handler)
}

// ListenPrevent is Listen with a filter evaluated synchronously inside the
// browser callback; when it returns true the default action is prevented.
func ListenPrevent(loop *eventloop.Loop, target js.Value, event string, prevent func(ev js.Value) bool, handler func(ev js.Value)) *Listener {
	l := &Listener{target: target, event: event}
	l.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		if prevent != nil && prevent(ev) {
			ev.Call("preventDefault")
		}
		loop.Post(func() { handler(ev) })
		return nil
	})
	target.Call("addEventListener", event, l.fn)
	return l
}

// SetClass adds or removes class on el.
func SetClass(el js.Value, class string, on bool) {
	if on {
		el.Get("classList").Call("add", class)
	} else {
		el.Get("classList").Call("remove", class)
	}
}

// SetHidden toggles the hidden attribute.
func SetHidden(el js.Value, hidden bool) { el.Set("hidden", hidden) }

// SetText replaces the text content of el.
func SetText(el js.Value, s string) { el.Set("textContent", s) }

// SetList replaces the children of el with one <li> per item.
func SetList(el js.Value, items []string) {
	el.Set("textContent", "")
	for _, s := range items {
		li := Document.Call("createElement", "li")
		li.Set("textContent", s)
		el.Call("appendChild", li)
	}
}

// Clear removes every child of el.
func Clear(el js.Value) { el.Set("textContent", "") }

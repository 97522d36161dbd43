//go:build js && wasm

package dom

import (
	"errors"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/devpradp/portfolio/internal/theme"
)

var errNoStorage = errors.New("dom: localStorage unavailable")

// ThemeStore persists the theme in localStorage and mirrors it to the
// cookie the server reads, so the next page load renders in the same theme.
type ThemeStore struct {
	Key    string
	Cookie string
}

func (s ThemeStore) Load() (theme.Theme, bool, error) {
	if v, ok := readCookie(s.Cookie); ok {
		if t, err := theme.Parse(v); err == nil {
			return t, true, nil
		}
	}
	storage, err := localStorage()
	if err != nil {
		return "", false, err
	}
	v := storage.Call("getItem", s.Key)
	if v.Type() != js.TypeString {
		return "", false, nil
	}
	t, err := theme.Parse(v.String())
	if err != nil {
		return "", false, nil
	}
	return t, true, nil
}

func (s ThemeStore) Save(t theme.Theme) error {
	if s.Cookie != "" {
		Document.Set("cookie", fmt.Sprintf("%s=%s; path=/; max-age=%d; samesite=lax", s.Cookie, t, 365*24*3600))
	}
	storage, err := localStorage()
	if err != nil {
		return err
	}
	storage.Call("setItem", s.Key, string(t))
	return nil
}

// SystemTheme reads prefers-color-scheme.
func SystemTheme() theme.Theme {
	mm := Window.Get("matchMedia")
	if mm.Type() != js.TypeFunction {
		return theme.Light
	}
	if Window.Call("matchMedia", "(prefers-color-scheme: dark)").Get("matches").Bool() {
		return theme.Dark
	}
	return theme.Light
}

// localStorage throws in some privacy modes.
func localStorage() (storage js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errNoStorage, r)
		}
	}()
	storage = Window.Get("localStorage")
	if !Present(storage) {
		return js.Undefined(), errNoStorage
	}
	return storage, nil
}

func readCookie(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, part := range strings.Split(Document.Get("cookie").String(), ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && k == name {
			return v, true
		}
	}
	return "", false
}

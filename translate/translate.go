// Package translate renders the user facing text of the forge packages
// through the golang.org/x/text message catalogue.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	mu      sync.RWMutex
	printer *message.Printer
)

// detect builds a printer for the host locale, falling back to en-US.
func detect() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("forge: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

func current() *message.Printer {
	mu.RLock()
	p := printer
	mu.RUnlock()
	if p != nil {
		return p
	}

	mu.Lock()
	defer mu.Unlock()
	if printer == nil {
		printer = detect()
	}
	return printer
}

// SetLanguage replaces the detected locale with tag.
func SetLanguage(tag language.Tag) {
	mu.Lock()
	printer = message.NewPrinter(tag)
	mu.Unlock()
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return current().Sprintf(key, args...)
}

// Package translate selects a message printer for the user's locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

// catalog_de holds the German renditions of diagnostics.
var catalog_de = map[string]string{
	"arithmetic overflow":                   "arithmetischer Überlauf",
	"unknown instruction":                   "unbekannte Instruktion",
	"divide by zero":                        "Division durch Null",
	"syntax error":                          "Syntaxfehler",
	"label %v defined multiple times":       "Label %v mehrfach definiert",
	"label %v not defined":                  "Label %v nicht definiert",
	"value %v does not fit in %d bits":      "Wert %v passt nicht in %d Bits",
	"branch target %v is too far away":      "Sprungziel %v ist zu weit entfernt",
	"register %v out of range":              "Register %v außerhalb des Bereichs",
	"$(%v) is not a valid expression":       "$(%v) ist kein gültiger Ausdruck",
	"assembly failed":                       "Assemblierung fehlgeschlagen",
	"line %d %v":                            "Zeile %d %v",
	"pc 0x%08x word 0x%08x %v":              "pc 0x%08x Wort 0x%08x %v",
	"image exceeds address space at 0x%08x": "Abbild überschreitet den Adressraum bei 0x%08x",
	"%v: %d error(s)":                       "%v: %d Fehler",
}

// supported lists the catalog languages, en-US first as the fallback.
var supported = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.German,
})

func init() {
	for key, text := range catalog_de {
		err := message.SetString(language.German, key, text)
		if err != nil {
			log.Printf("mipsim: catalog: %v", err)
		}
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("mipsim: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	tag, _ := language.MatchStrings(supported, locales...)
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// In formats with an explicit language, ignoring the user's locale.
func In(tag language.Tag, key message.Reference, args ...any) string {
	return message.NewPrinter(tag).Sprintf(key, args...)
}

// Package i18n traduce las claves de mensaje del dominio (pt-BR, es, en) con golang.org/x/text.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default idioma cuando el cliente no envía uno soportado.
var Default = language.BrazilianPortuguese

var supported = []language.Tag{language.BrazilianPortuguese, language.Spanish, language.English}

var matcher = language.NewMatcher(supported)

func init() {
	for tag, entries := range catalog {
		for key, msg := range entries {
			// SetString solo falla con tags inválidos; los del catálogo son fijos.
			_ = message.SetString(tag, key, msg)
		}
	}
}

// Parse convierte un código ("pt-BR", "es", "en") en un idioma soportado; fallback si no lo es.
func Parse(code string, fallback language.Tag) language.Tag {
	tag, err := language.Parse(code)
	if err != nil {
		return fallback
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return fallback
	}
	return supported[idx]
}

// Match elige el idioma soportado a partir de la cabecera Accept-Language.
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return supported[idx]
}

// Printer devuelve un printer para el idioma. Las claves sin traducción se imprimen tal cual.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// T traduce una clave de mensaje.
func T(tag language.Tag, key string, args ...any) string {
	return message.NewPrinter(tag).Sprintf(key, args...)
}

// Fields traduce los valores de un mapa campo → clave.
func Fields(tag language.Tag, fields map[string]string) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	p := Printer(tag)
	out := make(map[string]string, len(fields))
	for field, key := range fields {
		out[field] = p.Sprintf(key)
	}
	return out
}

package service

import (
	"strings"

	"golang.org/x/text/language"
)

// SupportedLocales son los idiomas que publica el sitio; el primero es el default.
var SupportedLocales = []language.Tag{
	language.English,
	language.Japanese,
}

var localeMatcher = language.NewMatcher(SupportedLocales)

// NormalizeLocale resuelve un locale arbitrario ("ja-JP", "en_US", "fr") al
// soportado mas cercano. Vacio o invalido cae en fallback.
func NormalizeLocale(raw, fallback string) string {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "_", "-")
	if raw == "" {
		return normalizedFallback(fallback)
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return normalizedFallback(fallback)
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return normalizedFallback(fallback)
	}
	return baseOf(SupportedLocales[idx])
}

func normalizedFallback(fallback string) string {
	fallback = strings.TrimSpace(fallback)
	for _, t := range SupportedLocales {
		if baseOf(t) == fallback {
			return fallback
		}
	}
	return baseOf(SupportedLocales[0])
}

func baseOf(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

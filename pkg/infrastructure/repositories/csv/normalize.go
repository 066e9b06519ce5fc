package csv

import (
	"strings"
	"unicode"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
)

// toHalfWidth maps full-width letters and digits to their ASCII forms.
// Source data mixes the two freely.
func toHalfWidth(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '０' && r <= '９':
			return r - '０' + '0'
		case r >= 'Ａ' && r <= 'Ｚ':
			return r - 'Ａ' + 'A'
		case r >= 'ａ' && r <= 'ｚ':
			return r - 'ａ' + 'a'
		default:
			return r
		}
	}, s)
}

// NormalizePartNumber canonicalizes a raw part number: trim, full-width to
// ASCII, hyphens and whitespace removed, uppercased.
func NormalizePartNumber(raw string) entities.PartNumber {
	s := toHalfWidth(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return entities.PartNumber(b.String())
}

// NormalizeLineName canonicalizes a raw line name against the configured
// universe: full-width to ASCII, non-alphanumerics stripped, uppercased, a
// leading M dropped. Bare three-digit names are retried with a "4" prefix.
// Returns "" when nothing remains.
func NormalizeLineName(raw string, cfg config.Config) entities.LineID {
	s := toHalfWidth(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		r = unicode.ToUpper(r)
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	name := b.String()

	if len(name) > 1 && name[0] == 'M' {
		name = name[1:]
	}

	if cfg.HasLine(entities.LineID(name)) {
		return entities.LineID(name)
	}

	if len(name) == 3 && isDigits(name) {
		candidate := entities.LineID("4" + name)
		if cfg.HasLine(candidate) {
			return candidate
		}
	}

	return entities.LineID(name)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

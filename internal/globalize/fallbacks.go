package globalize

import (
	"context"
	"slices"

	"golang.org/x/text/language"
)

// LanguageSet is an ordered list of language codes, most preferred first.
type LanguageSet []string

func (s LanguageSet) Contains(code string) bool {
	return slices.Contains(s, code)
}

// Fallbacks describes how a requested language degrades when no translation
// exists for it.
type Fallbacks struct {
	// Default is tried last for every language and used when no language is active.
	Default string
	// Chains lists explicit fallbacks per language, e.g. "fr-CA": {"fr", "en"}.
	Chains map[string][]string
}

// For returns the fallback sequence for code: the code itself, its explicit
// chain, its base language and finally the default. Duplicates keep their
// first position.
func (f Fallbacks) For(code string) LanguageSet {
	code = NormalizeCode(code)

	var set LanguageSet
	add := func(c string) {
		c = NormalizeCode(c)
		if c != "" && !set.Contains(c) {
			set = append(set, c)
		}
	}

	add(code)
	for _, c := range f.Chains[code] {
		add(c)
	}
	if base := baseLanguage(code); base != "" {
		add(base)
		for _, c := range f.Chains[base] {
			add(c)
		}
	}
	add(f.Default)

	return set
}

// Active returns the language stored in ctx, or the default language.
func (f Fallbacks) Active(ctx context.Context) string {
	if code := LanguageFrom(ctx); code != "" {
		return code
	}
	return NormalizeCode(f.Default)
}

func baseLanguage(code string) string {
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

// NewFallbacks normalizes every code in chains so lookups by canonical code match.
func NewFallbacks(defaultLanguage string, chains map[string][]string) Fallbacks {
	normalized := make(map[string][]string, len(chains))
	for code, chain := range chains {
		normalized[NormalizeCode(code)] = normalizeCodes(chain)
	}
	return Fallbacks{Default: NormalizeCode(defaultLanguage), Chains: normalized}
}

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DisplayNames returns the English and native names of code. Unknown codes
// return the code for both.
func DisplayNames(code string) (name, native string) {
	tag, err := language.Parse(code)
	if err != nil {
		return code, code
	}

	name = display.English.Tags().Name(tag)
	native = display.Self.Name(tag)
	if name == "" {
		name = code
	}
	if native == "" {
		native = name
	}
	return name, native
}

// BaseAndRegion splits a provider tag such as "fr-FR" into the language
// used for translation rows and the locale kept as refinement.
func BaseAndRegion(code string) (base, locale string) {
	tag, err := language.Parse(code)
	if err != nil {
		return code, ""
	}

	b, _ := tag.Base()
	if _, conf := tag.Region(); conf == language.Exact {
		return b.String(), tag.String()
	}
	return b.String(), ""
}

// Package middleware holds fiber handlers shared by every route.
package middleware

import (
	"movie-i18n/internal/globalize"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

// LanguageLocal is the fiber.Ctx locals key holding the request language.
const LanguageLocal = "language"

// Language resolves the request language from the "lang" query parameter or
// the Accept-Language header and stores it in the user context. Header
// values are matched against supported; an explicit "lang" is taken as is.
func Language(defaultLanguage string, supported []string) fiber.Handler {
	codes := []string{globalize.NormalizeCode(defaultLanguage)}
	for _, code := range supported {
		code = globalize.NormalizeCode(code)
		if code != "" && code != codes[0] {
			codes = append(codes, code)
		}
	}

	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		tags = append(tags, language.Make(code))
	}
	matcher := language.NewMatcher(tags)

	return func(c *fiber.Ctx) error {
		code := requestLanguage(c, matcher, codes)

		c.SetUserContext(globalize.WithLanguage(c.UserContext(), code))
		c.Locals(LanguageLocal, code)
		c.Set(fiber.HeaderContentLanguage, code)
		return c.Next()
	}
}

func requestLanguage(c *fiber.Ctx, matcher language.Matcher, codes []string) string {
	if lang := c.Query("lang"); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			return tag.String()
		}
	}

	if header := c.Get(fiber.HeaderAcceptLanguage); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			if _, index, conf := matcher.Match(tags...); conf != language.No {
				return codes[index]
			}
		}
	}

	return codes[0]
}

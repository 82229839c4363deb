package globalize

import "context"

type languageContextKey struct{}

// WithLanguage stores the active language in the context.
func WithLanguage(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, languageContextKey{}, NormalizeCode(code))
}

// LanguageFrom returns the active language stored in the context, or "".
func LanguageFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	code, _ := ctx.Value(languageContextKey{}).(string)
	return code
}

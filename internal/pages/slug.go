package pages

import (
	"context"
	"crypto/rand"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxSlugLength bounds every generated slug, suffixes included.
	MaxSlugLength = 50

	slugRetryLimit      = 10
	slugTokenLength     = 8
	slugFallbackLength  = 12
	slugSuggestionRunes = 30
	defaultSlugBase     = "memoria"
)

// SanitizeSlug turns free text into a URL-safe slug candidate: decompose to
// NFD, drop combining marks, lowercase, map everything outside [a-z0-9-] to a
// hyphen, collapse hyphen runs and trim the ends. Blank input yields "".
func SanitizeSlug(input string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), input)
	if err != nil {
		folded = input
	}

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// ExistsFunc probes the store for a slug already in use.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// TokenSource produces a random lowercase alphanumeric token of length n.
type TokenSource func(n int) string

// SlugGenerator derives unique slugs from free-text suggestions using a
// bounded collision-retry policy.
type SlugGenerator struct {
	exists ExistsFunc
	token  TokenSource
}

// SlugGeneratorOption configures the generator at construction time.
type SlugGeneratorOption func(*SlugGenerator)

// WithTokenSource overrides the random token source, mainly for tests.
func WithTokenSource(token TokenSource) SlugGeneratorOption {
	return func(g *SlugGenerator) {
		if token != nil {
			g.token = token
		}
	}
}

// NewSlugGenerator constructs a generator backed by the supplied existence probe.
func NewSlugGenerator(exists ExistsFunc, opts ...SlugGeneratorOption) *SlugGenerator {
	g := &SlugGenerator{
		exists: exists,
		token:  randomToken,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sanitizes the base suggestion and resolves collisions by suffixing
// "-{attempt}" onto a prefix truncated from the original candidate, so the
// result never exceeds MaxSlugLength and repeated suffixing cannot erode the
// base. After slugRetryLimit failed attempts it falls back to a random
// 12-character token; a collision on that token fails with ErrSlugExhausted.
func (g *SlugGenerator) Generate(ctx context.Context, base string) (string, error) {
	candidate := SanitizeSlug(base)
	if candidate == "" {
		candidate = g.token(slugTokenLength)
	}
	candidate = truncateSlug(candidate, MaxSlugLength)

	taken, err := g.exists(ctx, candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}

	for attempt := 1; attempt <= slugRetryLimit; attempt++ {
		suffix := "-" + strconv.Itoa(attempt)
		next := truncateSlug(candidate, MaxSlugLength-len(suffix)) + suffix
		taken, err := g.exists(ctx, next)
		if err != nil {
			return "", err
		}
		if !taken {
			return next, nil
		}
	}

	fallback := g.token(slugFallbackLength)
	taken, err = g.exists(ctx, fallback)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrSlugExhausted
	}
	return fallback, nil
}

// slugBase picks the generation base for a create request: the caller's
// suggestion, else the leading runes of the dedication text, else the literal
// default when sanitization yields nothing.
func slugBase(req CreatePageRequest) string {
	if suggestion := strings.TrimSpace(req.SuggestedSlug); suggestion != "" {
		return suggestion
	}
	text := []rune(strings.TrimSpace(req.DedicatedText))
	if len(text) > slugSuggestionRunes {
		text = text[:slugSuggestionRunes]
	}
	if SanitizeSlug(string(text)) == "" {
		return defaultSlugBase
	}
	return string(text)
}

// truncateSlug cuts to at most limit bytes without leaving a trailing hyphen.
func truncateSlug(slug string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(slug) > limit {
		slug = slug[:limit]
	}
	return strings.TrimRight(slug, "-")
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// the existence probe still guards a degenerate constant token
		for i := range buf {
			buf[i] = 'a'
		}
		return string(buf)
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf)
}

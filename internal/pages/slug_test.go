package pages_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/memoriasite/memoria/internal/pages"
)

func TestSanitizeSlug(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "hello-world", "hello-world"},
		{"uppercase and spaces", "Para Mi Amor", "para-mi-amor"},
		{"diacritics folded", "corazón añorado", "corazon-anorado"},
		{"symbols collapse", "te amo!!! mucho", "te-amo-mucho"},
		{"hyphen runs collapse", "a---b", "a-b"},
		{"trimmed ends", "--hola--", "hola"},
		{"only symbols", "!!!", ""},
		{"blank", "   ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pages.SanitizeSlug(tc.input)
			if got != tc.want {
				t.Fatalf("SanitizeSlug(%q) = %q, want %q", tc.input, got, tc.want)
			}
			if again := pages.SanitizeSlug(got); again != got {
				t.Fatalf("sanitize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func neverExists(context.Context, string) (bool, error) {
	return false, nil
}

func existsIn(taken ...string) pages.ExistsFunc {
	set := map[string]bool{}
	for _, slug := range taken {
		set[slug] = true
	}
	return func(_ context.Context, slug string) (bool, error) {
		return set[slug], nil
	}
}

func fixedTokens(tokens ...string) pages.TokenSource {
	i := 0
	return func(n int) string {
		if i < len(tokens) {
			token := tokens[i]
			i++
			return token
		}
		return strings.Repeat("z", n)
	}
}

func TestSlugGeneratorNoCollision(t *testing.T) {
	gen := pages.NewSlugGenerator(neverExists)

	slug, err := gen.Generate(context.Background(), "Hello World")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if slug != "hello-world" {
		t.Fatalf("slug = %q, want %q", slug, "hello-world")
	}
}

func TestSlugGeneratorCollisionSuffix(t *testing.T) {
	gen := pages.NewSlugGenerator(existsIn("hello-world", "hello-world-1"))

	slug, err := gen.Generate(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if slug != "hello-world-2" {
		t.Fatalf("slug = %q, want %q", slug, "hello-world-2")
	}
}

func TestSlugGeneratorTruncatesFromOriginalCandidate(t *testing.T) {
	long := strings.Repeat("a", pages.MaxSlugLength+10)
	truncated := strings.Repeat("a", pages.MaxSlugLength)
	gen := pages.NewSlugGenerator(existsIn(truncated))

	slug, err := gen.Generate(context.Background(), long)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := strings.Repeat("a", pages.MaxSlugLength-2) + "-1"
	if slug != want {
		t.Fatalf("slug = %q, want %q", slug, want)
	}
	if len(slug) > pages.MaxSlugLength {
		t.Fatalf("slug length %d exceeds %d", len(slug), pages.MaxSlugLength)
	}
}

func TestSlugGeneratorEmptyInputUsesRandomToken(t *testing.T) {
	gen := pages.NewSlugGenerator(neverExists, pages.WithTokenSource(fixedTokens("abcd1234")))

	slug, err := gen.Generate(context.Background(), "!!!")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if slug != "abcd1234" {
		t.Fatalf("slug = %q, want token fallback", slug)
	}
}

func TestSlugGeneratorFallbackAfterRetryLimit(t *testing.T) {
	taken := []string{"taken"}
	for i := 1; i <= 10; i++ {
		taken = append(taken, "taken-"+strconv.Itoa(i))
	}
	gen := pages.NewSlugGenerator(existsIn(taken...), pages.WithTokenSource(fixedTokens("fallback0token")))

	slug, err := gen.Generate(context.Background(), "taken")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if slug != "fallback0token" {
		t.Fatalf("slug = %q, want random fallback", slug)
	}
}

func TestSlugGeneratorExhausted(t *testing.T) {
	taken := []string{"taken", "fallback0token"}
	for i := 1; i <= 10; i++ {
		taken = append(taken, "taken-"+strconv.Itoa(i))
	}
	gen := pages.NewSlugGenerator(existsIn(taken...), pages.WithTokenSource(fixedTokens("fallback0token")))

	_, err := gen.Generate(context.Background(), "taken")
	if !errors.Is(err, pages.ErrSlugExhausted) {
		t.Fatalf("err = %v, want ErrSlugExhausted", err)
	}
}

func TestSlugGeneratorPropagatesProbeError(t *testing.T) {
	probeErr := errors.New("boom")
	gen := pages.NewSlugGenerator(func(context.Context, string) (bool, error) {
		return false, probeErr
	})

	_, err := gen.Generate(context.Background(), "anything")
	if !errors.Is(err, probeErr) {
		t.Fatalf("err = %v, want probe error", err)
	}
}

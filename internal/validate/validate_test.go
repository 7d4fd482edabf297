package validate

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

func TestIDAcceptsSimpleIdentifiers(t *testing.T) {
	for _, ok := range []string{"p-walnut-board", "v_1", "ord_1712345678901", "  p-1  "} {
		if _, valid := ID(ok); !valid {
			t.Fatalf("want %q accepted", ok)
		}
	}
	for _, bad := range []string{"", "  ", "p/1", "p 1", strings.Repeat("x", 65)} {
		if _, valid := ID(bad); valid {
			t.Fatalf("want %q rejected", bad)
		}
	}
}

func TestQTrimsAndCaps(t *testing.T) {
	if got := Q("  tent  "); got != "tent" {
		t.Fatalf("want trimmed query, got %q", got)
	}
	if got := Q(strings.Repeat("a", 100)); len(got) != 64 {
		t.Fatalf("want 64-byte cap, got %d bytes", len(got))
	}
}

func TestQCapKeepsRuneBoundaries(t *testing.T) {
	// 22 three-byte runes occupy 66 bytes, so byte 64 lands inside the
	// 22nd rune; the cap must back off rather than emit a broken rune.
	in := strings.Repeat("日", 22)
	got := Q(in)
	if !utf8.ValidString(got) {
		t.Fatalf("capped query is not valid UTF-8: %q", got)
	}
	if len(got) > 64 {
		t.Fatalf("cap exceeded: %d bytes", len(got))
	}
	if utf8.RuneCountInString(got) != 21 {
		t.Fatalf("want 21 whole runes, got %d", utf8.RuneCountInString(got))
	}
}

func TestPriceBounds(t *testing.T) {
	if d, ok := Price(""); !ok || d != nil {
		t.Fatalf("empty bound: got %v ok=%v", d, ok)
	}
	if d, ok := Price("12.50"); !ok || d == nil || !d.Equal(decimal.NewFromFloat(12.50)) {
		t.Fatalf("want 12.50, got %v ok=%v", d, ok)
	}
	for _, bad := range []string{"-1", "abc", "1.2.3"} {
		if _, ok := Price(bad); ok {
			t.Fatalf("want %q rejected", bad)
		}
	}
}

package recovery

import (
	"testing"
)

// TestDigestDeterministic verifies the digest is stable and hex-encoded.
func TestDigestDeterministic(t *testing.T) {
	t.Parallel()

	d1 := Digest("pw1")
	d2 := Digest("pw1")

	if d1 != d2 {
		t.Errorf("digest not deterministic: %s vs %s", d1, d2)
	}

	if len(d1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(d1))
	}

	if Digest("pw1") == Digest("pw2") {
		t.Error("distinct inputs produced identical digests")
	}
}

// TestNormalizeAnswer verifies lowercase plus whitespace stripping.
func TestNormalizeAnswer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"blue", "blue"},
		{"  Blue ", "blue"},
		{"DEEP\tBlue  Sea", "deepbluesea"},
		{"", ""},
		{" \n\t ", ""},
	}

	for _, tc := range cases {
		if got := NormalizeAnswer(tc.in); got != tc.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestNormalizeLiteral verifies trim-only normalization.
func TestNormalizeLiteral(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"2010", "2010"},
		{"  2010 ", "2010"},
		{"Year 2010", "Year 2010"}, // internal spacing preserved
		{"MiXeD", "MiXeD"},         // case preserved
	}

	for _, tc := range cases {
		if got := NormalizeLiteral(tc.in); got != tc.want {
			t.Errorf("NormalizeLiteral(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestNormalizeIdempotent verifies both rules are idempotent.
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"  Deep Blue ", "blue", "2010 ", "", "A b\tC"}

	for _, in := range inputs {
		once := NormalizeAnswer(in)
		if twice := NormalizeAnswer(once); twice != once {
			t.Errorf("NormalizeAnswer not idempotent for %q: %q vs %q", in, once, twice)
		}

		once = NormalizeLiteral(in)
		if twice := NormalizeLiteral(once); twice != once {
			t.Errorf("NormalizeLiteral not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

// TestValidDigest verifies reference digest validation.
func TestValidDigest(t *testing.T) {
	t.Parallel()

	if !validDigest(Digest("anything")) {
		t.Error("real digest rejected")
	}

	for _, bad := range []string{"", "abc", "zz" + Digest("x")[2:], Digest("x") + "00"} {
		if validDigest(bad) {
			t.Errorf("validDigest(%q) = true, want false", bad)
		}
	}
}

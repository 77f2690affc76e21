package extract

import (
	"slices"
	"testing"
)

// TestExtractObfuscatedEmails tests the three obfuscation decoders.
func TestExtractObfuscatedEmails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "protected email span",
			html: `<span data-cfemail="5a33343c351a2833343174393537">[email protected]</span>`,
			want: []string{"info@rink.com"},
		},
		{
			name: "protected email different key",
			html: `<a data-cfemail="2349424d4663404f56410d4c5144">[email protected]</a>`,
			want: []string{"jane@club.org"},
		},
		{
			name: "numeric entity run",
			html: `<p>&#105;&#110;&#102;&#111;&#64;&#114;&#105;&#110;&#107;&#46;&#99;&#111;&#109;</p>`,
			want: []string{"info@rink.com"},
		},
		{
			name: "base64 attribute",
			html: `<span data-email="ZGlyZWN0b3JAcmluay5jb20="></span>`,
			want: []string{"director@rink.com"},
		},
		{
			name: "rot13 attribute",
			html: `<span data-email="pbnpu@evax.pbz"></span>`,
			want: []string{"coach@rink.com"},
		},
		{
			name: "malformed payloads yield nothing",
			html: `<span data-cfemail="zz"></span><span data-cfemail="5a"></span><span data-email="!!!"></span>`,
			want: nil,
		},
		{
			name: "payload decoding to non-email dropped",
			html: `<span data-cfemail="00414243"></span>`,
			want: nil,
		},
		{
			name: "entity run spelling plain text dropped",
			html: `<p>&#104;&#101;&#108;&#108;&#111;&#32;&#116;&#104;&#101;&#114;&#101;</p>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractObfuscatedEmails(tt.html)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ExtractObfuscatedEmails() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestRot13 tests the rotation transform round trip.
func TestRot13(t *testing.T) {
	t.Parallel()

	in := "Coach@Rink.com"
	if got := rot13(rot13(in)); got != in {
		t.Errorf("rot13 round trip = %q, want %q", got, in)
	}
}

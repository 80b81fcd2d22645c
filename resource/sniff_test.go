package resource

import "testing"

func TestSniff(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Format
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0}, FormatPNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, FormatJPEG},
		{"gif87", []byte("GIF87a...."), FormatGIF},
		{"gif89", []byte("GIF89a...."), FormatGIF},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), FormatWebP},
		{"riff but not webp", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), FormatUnknown},
		{"empty", nil, FormatUnknown},
		{"short", []byte{0x89}, FormatUnknown},
		{"text", []byte("hello world, definitely not an image"), FormatUnknown},
	}
	for _, c := range cases {
		if got := Sniff(c.data); got != c.want {
			t.Errorf("%s: Sniff = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFormatString(t *testing.T) {
	if FormatPNG.String() != "png" || FormatUnknown.String() != "unknown" {
		t.Error("format names wrong")
	}
}

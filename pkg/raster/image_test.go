package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		format        Format
		wantLen       int
		wantErr       error
	}{
		{"rgb", 4, 3, RGB8, 36, nil},
		{"rgba", 4, 3, RGBA8, 48, nil},
		{"gray", 4, 3, Gray8, 12, nil},
		{"zero width", 0, 5, RGB8, 0, nil},
		{"zero height", 5, 0, RGB8, 0, nil},
		{"negative", -1, 5, RGB8, 0, ErrInvalidDimensions},
		{"bad format", 1, 1, Format(99), 0, ErrInvalidFormat},
		{"too large", 1 << 29, 1 << 30, RGB8, 0, ErrTooLarge},
		{"row overflows", 1 << 62, 2, RGBA8, 0, ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := New(tt.width, tt.height, tt.format)
			if err != tt.wantErr {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(img.Pix()) != tt.wantLen {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix()), tt.wantLen)
			}
		})
	}
}

func TestCheckSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		format        Format
		wantErr       error
	}{
		{"at limit", 1 << 15, 1 << 15, RGBA8, nil},
		{"one row over", 1 << 15, 1<<15 + 1, RGBA8, ErrTooLarge},
		{"gray at limit", 1 << 16, 1 << 16, Gray8, nil},
		{"zero height huge width", 1 << 62, 0, RGB8, nil},
		{"product overflows", 1 << 40, 1 << 40, RGB8, ErrTooLarge},
		{"negative height", 1, -1, RGB8, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckSize(tt.width, tt.height, tt.format); err != tt.wantErr {
				t.Errorf("CheckSize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromRawSizeMismatch(t *testing.T) {
	if _, err := FromRaw(make([]byte, 5), 2, 1, RGB8); err != ErrDataSize {
		t.Errorf("FromRaw() error = %v, want ErrDataSize", err)
	}
	img, err := FromRaw(make([]byte, 6), 2, 1, RGB8)
	if err != nil {
		t.Fatalf("FromRaw() error = %v", err)
	}
	if img.Stride() != 6 {
		t.Errorf("Stride() = %d, want 6", img.Stride())
	}
}

func TestRowAndRegion(t *testing.T) {
	img, _ := New(3, 2, RGB8)
	for i := range img.Pix() {
		img.Pix()[i] = byte(i)
	}

	if got := img.Row(1)[0]; got != 9 {
		t.Errorf("Row(1)[0] = %d, want 9", got)
	}
	if img.Row(2) != nil || img.Row(-1) != nil {
		t.Error("Row() out of range should return nil")
	}

	sub, ok := img.Region(1, 1, 2, 1)
	if !ok {
		t.Fatal("Region() should succeed")
	}
	want := []byte{12, 13, 14, 15, 16, 17}
	for i, v := range want {
		if sub.Pix()[i] != v {
			t.Fatalf("Region pix[%d] = %d, want %d", i, sub.Pix()[i], v)
		}
	}

	if _, ok := img.Region(2, 0, 2, 1); ok {
		t.Error("Region() past the right edge should fail")
	}
}

func TestFill(t *testing.T) {
	img, _ := New(2, 2, RGB8)
	img.Fill(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	for i := 0; i < len(img.Pix()); i += 3 {
		if img.Pix()[i] != 10 || img.Pix()[i+1] != 20 || img.Pix()[i+2] != 30 {
			t.Fatalf("pixel at byte %d = %v", i, img.Pix()[i:i+3])
		}
	}
}

func TestAtMatchesStorage(t *testing.T) {
	img, _ := New(2, 1, RGB8)
	copy(img.Pix(), []byte{1, 2, 3, 4, 5, 6})

	c := img.At(1, 0).(color.RGBA)
	if c.R != 4 || c.G != 5 || c.B != 6 || c.A != 255 {
		t.Errorf("At(1,0) = %+v", c)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
}

func TestFromImageRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = byte(i * 7)
	}
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 0xff
	}

	rgb, err := FromImage(src, RGB8)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := src.NRGBAAt(x, y)
			got := rgb.At(x, y).(color.RGBA)
			if got.R != want.R || got.G != want.G || got.B != want.B {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}

	rgba, err := FromImage(src, RGBA8)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	for i := range src.Pix {
		if rgba.Pix()[i] != src.Pix[i] {
			t.Fatalf("RGBA8 pix[%d] = %d, want %d", i, rgba.Pix()[i], src.Pix[i])
		}
	}
}

func TestWriteIntoSizeCheck(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	if err := WriteInto(make([]byte, 3), src, Gray8); err != ErrDataSize {
		t.Errorf("WriteInto() error = %v, want ErrDataSize", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", RGB8, false},
		{"rgb8", RGB8, false},
		{"rgba8", RGBA8, false},
		{"gray8", Gray8, false},
		{"RGB8", 0, true},
		{"cmyk", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"", nil, false},
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#000", color.NRGBA{A: 255}, false},
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}, false},
		{"10203080", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, false},
		{"#12345", nil, true},
		{"#zzzzzz", nil, true},
		{"mauve", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

package symbol

import "testing"

func TestFormatIDWidths(t *testing.T) {
	cases := map[uint64]string{
		1:         "VEC-#0000001",
		9:         "VEC-#0000009",
		10:        "VEC-#000010",
		99:        "VEC-#000099",
		100:       "VEC-#00100",
		999:       "VEC-#00999",
		1_000:     "VEC-#1000",
		10_000:    "VEC-#10000",
		1_000_000: "VEC-#1000000",
		2_345_678: "VEC-#2345678",
	}
	for in, want := range cases {
		if got := FormatID(in); got != want {
			t.Fatalf("FormatID(%d) = %q, want %q", in, got, want)
		}
	}
}

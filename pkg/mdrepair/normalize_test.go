package mdrepair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "trailing line continuation backslash",
			in:   "int x; \\\nint y;",
			want: "int x; \nint y;",
		},
		{
			name: "malformed block comment",
			in:   "*/* initialise the timer */*",
			want: "/* initialise the timer */",
		},
		{
			name: "malformed block comment with inner spacing",
			in:   "* /* config */ *",
			want: "/* config */",
		},
		{
			name: "emphasized line comment",
			in:   "*// enable interrupts*",
			want: "// enable interrupts",
		},
		{
			name: "escaped brackets",
			in:   `arr\[0\] = 1;`,
			want: "arr[0] = 1;",
		},
		{
			name: "bold markup stripped",
			in:   "(void)**pvParameters**;",
			want: "(void)pvParameters;",
		},
		{
			name: "italic markup stripped",
			in:   "(void)*pvParameters*;",
			want: "(void)pvParameters;",
		},
		{
			name: "doxygen comment preserved byte for byte",
			in:   "/** note * more */\nint x;",
			want: "/** note * more */\nint x;",
		},
		{
			name: "asterisks inside line comment preserved",
			in:   "// multiply: a * b * c",
			want: "// multiply: a * b * c",
		},
		{
			name: "emphasis outside comment stripped while comment kept",
			in:   "int *val* = 0; /* keep *this* */",
			want: "int val = 0; /* keep *this* */",
		},
		{
			name: "no artifacts passes through unchanged",
			in:   "for (i = 0; i < n; i++) {\n    sum += i;\n}",
			want: "for (i = 0; i < n; i++) {\n    sum += i;\n}",
		},
		{
			name: "empty body",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

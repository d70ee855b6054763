package lineprint

import "testing"

func TestStripSpace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a b", "ab"},
		{" \t\r\n", ""},
		{"int main() {\n\treturn 0;\n}", "intmain(){return0;}"},
		{"a\u00a0b", "ab"}, // non-breaking space counts as whitespace too
	}
	for _, tt := range tests {
		got, err := StripSpace(tt.in)
		if err != nil {
			t.Fatalf("StripSpace(%q) unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("StripSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "int x;", "int x;"},
		{"line comment", "int x; // counter", "int x; "},
		{"line comment keeps newline", "a // c\nb", "a \nb"},
		{"block comment", "a /* c */ b", "a   b"},
		{"block comment across lines", "a /* c\nd */ b", "a   b"},
		{"unterminated block runs to end", "a /* c", "a  "},
		{"comment chars in string", `s = "// not /* a comment";`, `s = "// not /* a comment";`},
		{"escaped quote in string", `s = "\"//";`, `s = "\"//";`},
		{"comment chars in char literal", "c = '/'; d = '*';", "c = '/'; d = '*';"},
		{"spliced line", "int \\\nx;", "int x;"},
		{"spliced line comment swallows next line", "// c \\\nint x;", ""},
		{"division is not a comment", "a = b / c / d;", "a = b / c / d;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StripComments(tt.in)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if got != tt.want {
				t.Errorf("StripComments(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCppNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int main() { // entry\n\treturn 0;\n}", "intmain(){return0;}"},
		{"int main() {\nreturn 0; /* why not */\n}", "intmain(){return0;}"},
		{`puts("hello world"); // greet`, `puts("helloworld");`},
	}
	for _, tt := range tests {
		got, err := CppNormalize(tt.in)
		if err != nil {
			t.Fatalf("CppNormalize(%q) unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("CppNormalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

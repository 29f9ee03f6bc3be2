package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"  y  \n", true},
		{"y", true},
		{"yes\n", false},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := New(strings.NewReader(tt.input), &out)
		got, err := p.Confirm("Update? (y/n): ")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("Confirm(%q)=%t want=%t", tt.input, got, tt.want)
		}
		if !strings.HasPrefix(out.String(), "Update? (y/n): ") {
			t.Fatalf("question not written, got %q", out.String())
		}
	}
}

func TestConfirmReadsOneLinePerQuestion(t *testing.T) {
	p := New(strings.NewReader("y\nn\ny\n"), &bytes.Buffer{})
	want := []bool{true, false, true}
	for i, w := range want {
		got, err := p.Confirm("?")
		if err != nil {
			t.Fatalf("Confirm #%d failed: %v", i, err)
		}
		if got != w {
			t.Fatalf("Confirm #%d=%t want=%t", i, got, w)
		}
	}
}

func TestSelect(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("2\n"), &out)
	got, err := p.Select("Pick a version:", []string{"1.19.2", "1.20.1", "1.21"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if got != 1 {
		t.Fatalf("Select=%d want=1", got)
	}
	for _, s := range []string{"Pick a version:", "1) 1.19.2", "2) 1.20.1", "3) 1.21"} {
		if !strings.Contains(out.String(), s) {
			t.Fatalf("output %q missing %q", out.String(), s)
		}
	}
}

func TestSelectInvalid(t *testing.T) {
	for _, input := range []string{"0\n", "4\n", "-1\n", "abc\n", "\n", ""} {
		p := New(strings.NewReader(input), &bytes.Buffer{})
		_, err := p.Select("Pick:", []string{"a", "b", "c"})
		if !errors.Is(err, ErrInvalidSelection) {
			t.Fatalf("Select(%q): expected ErrInvalidSelection, got %v", input, err)
		}
	}
}

func TestAssumeYes(t *testing.T) {
	var out bytes.Buffer
	p := AssumeYes(New(strings.NewReader("1\n"), &out))

	ok, err := p.Confirm("Update? (y/n): ")
	if err != nil || !ok {
		t.Fatalf("Confirm=%t err=%v, want true", ok, err)
	}
	if out.Len() != 0 {
		t.Fatalf("AssumeYes should not write the question, got %q", out.String())
	}

	idx, err := p.Select("Pick:", []string{"a", "b"})
	if err != nil || idx != 0 {
		t.Fatalf("Select=%d err=%v, want delegated answer 0", idx, err)
	}
}

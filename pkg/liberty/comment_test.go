package liberty

import (
	"errors"
	"strings"
	"testing"
)

func TestStripLineComment(t *testing.T) {
	src := "area : 1.5; // trailing note\nfoo : bar;\n"
	out, err := StripComments(src)
	if err != nil {
		t.Fatalf("StripComments failed: %v", err)
	}
	if strings.Contains(out, "trailing") {
		t.Errorf("line comment not removed: %q", out)
	}
	if !strings.Contains(out, "foo : bar;") {
		t.Errorf("code after comment lost: %q", out)
	}
}

func TestStripBlockComment(t *testing.T) {
	src := "a /* one\ntwo\nthree */ b"
	out, err := StripComments(src)
	if err != nil {
		t.Fatalf("StripComments failed: %v", err)
	}
	if strings.Contains(out, "two") {
		t.Errorf("block comment not removed: %q", out)
	}
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Errorf("surrounding code lost: %q", out)
	}
}

func TestStripPreservesOffsetsAndNewlines(t *testing.T) {
	src := "one // x\ntwo /* y\ny */ three\n"
	out, err := StripComments(src)
	if err != nil {
		t.Fatalf("StripComments failed: %v", err)
	}
	if len(out) != len(src) {
		t.Fatalf("length changed: %d -> %d", len(src), len(out))
	}
	if strings.Count(out, "\n") != strings.Count(src, "\n") {
		t.Errorf("newline count changed")
	}
	if i := strings.Index(out, "three"); i != strings.Index(src, "three") {
		t.Errorf("offset of code moved: %d vs %d", i, strings.Index(src, "three"))
	}
}

func TestCommentOpenerInsideString(t *testing.T) {
	src := `function : "A // B"; cap : 1.0; note : "x /* y */ z";`
	out, err := StripComments(src)
	if err != nil {
		t.Fatalf("StripComments failed: %v", err)
	}
	if out != src {
		t.Errorf("quoted comment markers were mutated:\n got %q\nwant %q", out, src)
	}
}

func TestStripIsIdempotent(t *testing.T) {
	src := "a : 1; // c\nb /* d */ : 2; s : \"//not\";\n"
	once, err := StripComments(src)
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	twice, err := StripComments(once)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if once != twice {
		t.Errorf("not idempotent:\n once %q\ntwice %q", once, twice)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, err := StripComments("cell (X) { /* oops\n")
	if !errors.Is(err, ErrUnterminatedComment) {
		t.Fatalf("expected ErrUnterminatedComment, got %v", err)
	}
}

func TestEscapedQuoteInsideString(t *testing.T) {
	src := `s : "a\"b // still string"; t : 1; // gone`
	out, err := StripComments(src)
	if err != nil {
		t.Fatalf("StripComments failed: %v", err)
	}
	if !strings.Contains(out, `still string`) {
		t.Errorf("escaped quote ended string early: %q", out)
	}
	if strings.Contains(out, "gone") {
		t.Errorf("real comment survived: %q", out)
	}
}

func TestLineAt(t *testing.T) {
	src := "a\nb\nc"
	if l := lineAt(src, 0); l != 1 {
		t.Errorf("offset 0: got line %d", l)
	}
	if l := lineAt(src, 2); l != 2 {
		t.Errorf("offset 2: got line %d", l)
	}
	if l := lineAt(src, 4); l != 3 {
		t.Errorf("offset 4: got line %d", l)
	}
}

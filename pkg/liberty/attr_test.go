package liberty

import "testing"

func TestParseValueNumeric(t *testing.T) {
	v := ParseValue("1.5")
	if !v.IsNum || v.Float != 1.5 {
		t.Errorf("numeric coercion failed: %+v", v)
	}
	v = ParseValue(`"0.7"`)
	if !v.IsNum || v.Float != 0.7 {
		t.Errorf("quoted numeric coercion failed: %+v", v)
	}
}

func TestParseValueString(t *testing.T) {
	v := ParseValue(`"table_lookup"`)
	if v.IsNum || v.Str != "table_lookup" {
		t.Errorf("string value wrong: %+v", v)
	}
	if v.String() != "table_lookup" {
		t.Errorf("String() = %q", v.String())
	}
}

func TestValueMarshalJSON(t *testing.T) {
	num, err := ParseValue("2.25").MarshalJSON()
	if err != nil || string(num) != "2.25" {
		t.Errorf("numeric marshal: %s err=%v", num, err)
	}
	str, err := ParseValue("ss").MarshalJSON()
	if err != nil || string(str) != `"ss"` {
		t.Errorf("string marshal: %s err=%v", str, err)
	}
}

func TestUnquote(t *testing.T) {
	if got := unquote(` "A&B" `); got != "A&B" {
		t.Errorf("unquote = %q", got)
	}
	if got := unquote("plain"); got != "plain" {
		t.Errorf("unquote = %q", got)
	}
}

func TestFloatList(t *testing.T) {
	vals, err := floatList(`"0.01, 0.02, 0.04"`)
	if err != nil {
		t.Fatalf("floatList failed: %v", err)
	}
	want := []float64{0.01, 0.02, 0.04}
	if len(vals) != len(want) {
		t.Fatalf("got %d values", len(vals))
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("vals[%d] = %v, want %v", i, vals[i], want[i])
		}
	}
}

func TestFloatListBadEntry(t *testing.T) {
	if _, err := floatList(`"0.01, oops"`); err == nil {
		t.Fatal("expected parse error")
	}
}

package query

import (
	"reflect"
	"testing"
)

func TestPrintRoundTrip(t *testing.T) {
	queries := []string{
		`(apple AND banana) OR cherry`,
		`NOT dog`,
		`apple OR banana AND cherry`,
		`"brown fox"`,
		`apple AND banana AND cherry`,
	}
	for _, q := range queries {
		original, err := Parse(q)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", q, err)
		}
		printed := Print(original)
		reparsed, err := Parse(printed)
		if err != nil {
			t.Fatalf("Parse(Print(%q)=%q) error: %v", q, printed, err)
		}
		if !reflect.DeepEqual(original, reparsed) {
			t.Fatalf("round trip mismatch for %q: original=%#v reparsed=%#v (printed=%q)", q, original, reparsed, printed)
		}
	}
}

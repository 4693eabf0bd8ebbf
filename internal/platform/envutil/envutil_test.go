package envutil

import (
	"reflect"
	"testing"
)

func TestInt(t *testing.T) {
	t.Setenv("SURVEY_TEST_INT", "7")
	if got := Int("SURVEY_TEST_INT", 1, nil); got != 7 {
		t.Fatalf("Int: got=%d want=7", got)
	}
	t.Setenv("SURVEY_TEST_INT", "seven")
	if got := Int("SURVEY_TEST_INT", 1, nil); got != 1 {
		t.Fatalf("Int fallback: got=%d want=1", got)
	}
}

func TestStringBlankUsesDefault(t *testing.T) {
	t.Setenv("SURVEY_TEST_STR", "   ")
	if got := String("SURVEY_TEST_STR", "fallback", nil); got != "fallback" {
		t.Fatalf("String: got=%q", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("SURVEY_TEST_BOOL", "on")
	if !Bool("SURVEY_TEST_BOOL", false, nil) {
		t.Fatal("expected true")
	}
	t.Setenv("SURVEY_TEST_BOOL", "maybe")
	if Bool("SURVEY_TEST_BOOL", false, nil) {
		t.Fatal("expected default false")
	}
}

func TestList(t *testing.T) {
	t.Setenv("SURVEY_TEST_LIST", "a, b,,c ")
	got := List("SURVEY_TEST_LIST", nil, nil)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("List: got=%v want=%v", got, want)
	}
}

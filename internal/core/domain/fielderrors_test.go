package domain

import (
	"errors"
	"testing"
)

func TestFieldErrors_Add(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("username", "This field may not be blank.")
	fe.Add("username", "A user with that username already exists.")

	if len(fe["username"]) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(fe["username"]))
	}
}

func TestFieldErrors_ErrorIsDeterministic(t *testing.T) {
	fe := FieldErrors{
		"b_field": {"second"},
		"a_field": {"first"},
	}

	want := "a_field: first | b_field: second"
	for i := 0; i < 10; i++ {
		if got := fe.Error(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestFieldErrors_ErrorsAs(t *testing.T) {
	var err error = NewFieldError("password", "Password must be at least 8 characters.")

	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("errors.As failed")
	}
	if fe["password"][0] != "Password must be at least 8 characters." {
		t.Fatalf("unexpected contents: %+v", fe)
	}
}

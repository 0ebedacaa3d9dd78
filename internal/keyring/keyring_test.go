package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	want := "postgres://doselog@localhost:5432/doselog?sslmode=disable"
	if err := SetConnectionString(want); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != want {
		t.Errorf("GetConnectionString() = %q, want %q", got, want)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://doselog@localhost/doselog"); err != nil {
		t.Fatal(err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestGetStatus(t *testing.T) {
	gokeyring.MockInit()

	if st := GetStatus(); !st.Available || st.HasSecret {
		t.Errorf("empty keyring status = %+v", st)
	}

	if err := SetConnectionString("postgres://doselog@localhost/doselog"); err != nil {
		t.Fatal(err)
	}
	if st := GetStatus(); !st.Available || !st.HasSecret {
		t.Errorf("populated keyring status = %+v", st)
	}
}

func TestGetStatusUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus"))
	defer gokeyring.MockInit()

	if st := GetStatus(); st.Available {
		t.Errorf("status = %+v, want unavailable", st)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetConnectionString() error = %v, want ErrKeyringUnavailable", err)
	}
}

package store

import (
	"path/filepath"
	"testing"
)

func open(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSetGetDelete(t *testing.T) {
	st := open(t)

	if _, ok := st.Get("missing"); ok {
		t.Fatal("phantom value for missing key")
	}
	if err := st.Set(KeyUsername, "20231011040022"); err != nil {
		t.Fatal(err)
	}
	v, ok := st.Get(KeyUsername)
	if !ok || v != "20231011040022" {
		t.Fatalf("Get = %q, %v", v, ok)
	}

	if err := st.Delete(KeyUsername, "never-existed"); err != nil {
		t.Fatal(err)
	}
	if _, ok := st.Get(KeyUsername); ok {
		t.Fatal("key survived Delete")
	}
}

func TestGetJSON_CorruptEntryIsAMiss(t *testing.T) {
	st := open(t)
	_ = st.Set(KeyGrades, `{"this is not`) // truncated write

	var out []map[string]any
	if st.GetJSON(KeyGrades, &out) {
		t.Fatal("corrupt entry reported as a hit")
	}

	type rec struct {
		Subject string `json:"subject"`
	}
	if err := st.SetJSON(KeyGrades, []rec{{Subject: "POO"}}); err != nil {
		t.Fatal(err)
	}
	var back []rec
	if !st.GetJSON(KeyGrades, &back) || len(back) != 1 || back[0].Subject != "POO" {
		t.Fatalf("round trip = %+v", back)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	st, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = st.Set(KeyThemeMode, "dark")
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = st2.Close() }()
	if v, _ := st2.Get(KeyThemeMode); v != "dark" {
		t.Fatalf("value lost across reopen: %q", v)
	}
	if err := st2.Ping(); err != nil {
		t.Fatal(err)
	}
}

func TestUserDataKeysExcludePreferences(t *testing.T) {
	wiped := map[string]bool{}
	for _, k := range UserDataKeys() {
		wiped[k] = true
	}
	for _, k := range []string{KeyThemeMode, KeyThemeVariant, KeyWallpaper, KeyHolidays, KeyClassroomToken} {
		if wiped[k] {
			t.Errorf("%q must survive logout", k)
		}
	}
	for _, k := range []string{KeyAccessToken, KeyRefreshToken, KeyGrades, KeyCoursework} {
		if !wiped[k] {
			t.Errorf("%q must be wiped on logout", k)
		}
	}
}

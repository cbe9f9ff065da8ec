package helpers

import (
	"reflect"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		parts []string
		want  string
	}{
		{[]string{"Canopy Walk", "Kakum"}, "canopy-walk-kakum"},
		{[]string{"  Boti   Falls!  "}, "boti-falls"},
		{[]string{"Café & Lounge"}, "caf-lounge"},
		{[]string{""}, ""},
	}
	for _, tc := range cases {
		if got := GenerateSlug(tc.parts...); got != tc.want {
			t.Errorf("GenerateSlug(%v) = %q, want %q", tc.parts, got, tc.want)
		}
	}
}

func TestIsPasswordStrong(t *testing.T) {
	strong := []string{"Str0ng!Pass", "aB3$efgh"}
	weak := []string{"short1!", "alllowercase1!", "NOLOWER1!", "NoNumbers!", "NoSpecial1a"}

	for _, p := range strong {
		if !IsPasswordStrong(p) {
			t.Errorf("expected %q to pass", p)
		}
	}
	for _, p := range weak {
		if IsPasswordStrong(p) {
			t.Errorf("expected %q to fail", p)
		}
	}
}

func TestRemoveDuplicates(t *testing.T) {
	got := RemoveDuplicates([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RemoveDuplicates = %v, want %v", got, want)
	}
}

func TestGetSafeRoleDefaultsToTourist(t *testing.T) {
	claims := &EnhancedClaims{}
	if got := claims.GetSafeRole(); got != "tourist" {
		t.Errorf("expected tourist default, got %q", got)
	}
	claims.Role = "admin"
	if !claims.IsAdmin() {
		t.Error("expected admin")
	}
}

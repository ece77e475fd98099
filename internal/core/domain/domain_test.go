package domain

import (
	"strings"
	"testing"
	"time"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Aa1!aaaa", true},
		{"StrongPassword123!", true},
		{"Bb2@bbbb", true},
		{"xY9&zzzz  with spaces", true},
		{"weak", false},
		{"Aa1!aaa", false},  // seven characters
		{"aa1!aaaa", false}, // no uppercase
		{"AA1!AAAA", false}, // no lowercase
		{"Aa!!aaaa", false}, // no digit
		{"Aa1aaaaa", false}, // no special
		{"Aa1#aaaa", false}, // # is not in the special set
		{"", false},
		{"Aa1!ééé", false}, // seven characters, ten bytes
		{"Aa1!éééé", true}, // eight characters
		{"Aa1!日本語x", true}, // eight characters
	}

	for _, tt := range tests {
		if got := IsStrongPassword(tt.password); got != tt.want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestPasswordTooLong(t *testing.T) {
	if PasswordTooLong(strings.Repeat("a", MaxPasswordBytes)) {
		t.Fatalf("72 bytes must be accepted")
	}
	if !PasswordTooLong(strings.Repeat("a", MaxPasswordBytes+1)) {
		t.Fatalf("73 bytes must be rejected")
	}
	// 36 two-byte runes is 72 bytes; one more crosses the limit.
	if !PasswordTooLong(strings.Repeat("é", 37)) {
		t.Fatalf("length is measured in bytes")
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, ok := ParseRole(string(r))
		if !ok || got != r {
			t.Fatalf("ParseRole(%q) = %q, %v", r, got, ok)
		}
	}
	for _, s := range []string{"admin", "ADMIN", "", "Reporter"} {
		if _, ok := ParseRole(s); ok {
			t.Fatalf("ParseRole(%q) should fail", s)
		}
	}
}

func TestRole_Assignable(t *testing.T) {
	want := map[Role]bool{
		RoleAdmin:     true,
		RoleEditor:    true,
		RoleSupport:   true,
		RoleNewsmaker: false,
		RoleNewsroom:  false,
	}
	for role, assignable := range want {
		if role.Assignable() != assignable {
			t.Errorf("%s.Assignable() = %v, want %v", role, !assignable, assignable)
		}
	}
}

func TestNewUser_Defaults(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	u := NewUser("alice", "alice@example.com", "hash", "", now)

	if u.Role != RoleNewsmaker {
		t.Fatalf("expected default role Newsmaker, got %s", u.Role)
	}
	if !u.IsSubscriptionValid || u.IsVerified {
		t.Fatalf("unexpected flags: %+v", u)
	}
	if !u.CreatedAt.Equal(now) || !u.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not set")
	}
	if u.IsAdmin() {
		t.Fatalf("Newsmaker must not be admin")
	}

	var nilUser *User
	if nilUser.IsAdmin() {
		t.Fatalf("nil user must not be admin")
	}
}

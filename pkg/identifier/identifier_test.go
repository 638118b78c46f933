package identifier

import (
	"strings"
	"testing"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: "john", want: "john"},
		{name: "uppercase folded", raw: "John", want: "john"},
		{name: "whitespace trimmed", raw: "  jane \n", want: "jane"},
		{name: "underscore and hyphen", raw: "john_doe-2", want: "john_doe-2"},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace only", raw: "   ", wantErr: true},
		{name: "inner space", raw: "john doe", wantErr: true},
		{name: "unicode", raw: "jöhn", wantErr: true},
		{name: "dot", raw: "john.doe", wantErr: true},
		{name: "too long", raw: strings.Repeat("a", 65), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeUsername(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeUsername(%q) = %q, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeUsername(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeUsername(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "single segment", raw: "work", want: "work"},
		{name: "multi segment", raw: "team-alpha-notes", want: "team-alpha-notes"},
		{name: "uppercase folded", raw: "Team-Alpha", want: "team-alpha"},
		{name: "digits", raw: "q3-2026", want: "q3-2026"},
		{name: "empty", raw: "", wantErr: true},
		{name: "leading hyphen", raw: "-work", wantErr: true},
		{name: "trailing hyphen", raw: "work-", wantErr: true},
		{name: "double hyphen", raw: "team--alpha", wantErr: true},
		{name: "underscore", raw: "team_alpha", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSlug(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeSlug(%q) = %q, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeSlug(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeSlug(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	token, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if len(token) != TokenLength {
		t.Fatalf("NewToken length = %d, want %d", len(token), TokenLength)
	}
	if _, err := ValidateToken(token); err != nil {
		t.Errorf("ValidateToken rejected fresh token: %v", err)
	}

	bad := []string{
		"",
		"short",
		token[:63],
		token + "0",
		// right length, wrong alphabet
		"Z" + token[1:],
	}
	for _, raw := range bad {
		if _, err := ValidateToken(raw); err == nil {
			t.Errorf("ValidateToken(%q) accepted malformed token", raw)
		}
	}
}

func TestNewTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken: %v", err)
		}
		if seen[token] {
			t.Fatalf("NewToken returned duplicate token %q", token)
		}
		seen[token] = true
	}
}

func TestValidateNumber(t *testing.T) {
	if _, err := ValidateNumber(1); err != nil {
		t.Errorf("ValidateNumber(1) unexpected error: %v", err)
	}
	if _, err := ValidateNumber(0); err == nil {
		t.Error("ValidateNumber(0) accepted zero")
	}
	if _, err := ValidateNumber(-5); err == nil {
		t.Error("ValidateNumber(-5) accepted negative")
	}
}

func TestValidateFieldID(t *testing.T) {
	valid := []string{"status", "assigned_to", "f1"}
	for _, id := range valid {
		if _, err := ValidateFieldID(id); err != nil {
			t.Errorf("ValidateFieldID(%q) unexpected error: %v", id, err)
		}
	}
	invalid := []string{"", "Assigned", "with-hyphen", "with space"}
	for _, id := range invalid {
		if _, err := ValidateFieldID(id); err == nil {
			t.Errorf("ValidateFieldID(%q) accepted invalid id", id)
		}
	}
}

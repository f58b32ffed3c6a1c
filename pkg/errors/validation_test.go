package errors

import (
	"strings"
	"testing"
)

func TestValidateComponentID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "R1", false},
		{"valid underscore", "_tmp", false},
		{"valid dash", "U1-A", false},

		{"empty", "", true},
		{"too long", "R" + strings.Repeat("1", MaxIdentifierLength), true},
		{"leading digit", "1R", true},
		{"dot", "R1.2", true},
		{"space", "R 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComponentID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateComponentID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateNetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "VCC", false},
		{"ground", "0", false},
		{"empty", "", true},
		{"digits", "12", true},
		{"punctuation", "V+", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePinName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"numeric", "1", false},
		{"plus", "+", false},
		{"supply", "V-", false},
		{"empty", "", true},
		{"dot", "a.b", true},
		{"space", "a b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePinName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePinName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid file", "out.svg", false},
		{"valid nested", "build/out.svg", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../out.svg", true},
		{"backslash", "build\\out.svg", true},
		{"null byte", "out\x00.svg", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

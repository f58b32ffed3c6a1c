package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Commit
	defer func() { Commit = old }()

	Commit = "abc123"
	if got := Get().Commit; got != "abc123" {
		t.Errorf("Commit = %q, want ldflags value", got)
	}
	if Get().Version != Version {
		t.Errorf("Version not passed through")
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "go: ") {
		t.Errorf("String() missing go version: %q", String())
	}
}

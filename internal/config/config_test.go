package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestParseDefaults(t *testing.T) {
	conf, err := Parse()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":3002", conf.HTTP.Address; e != g {
		t.Errorf("address: expected %q, got %q", e, g)
	}

	if e, g := "notely.sqlite", conf.Storage.Database.DSN; e != g {
		t.Errorf("database dsn: expected %q, got %q", e, g)
	}

	if conf.LLM.Enabled {
		t.Errorf("llm should be disabled by default")
	}
}

func TestParseEnvOverride(t *testing.T) {
	t.Setenv("NOTELY_HTTP_ADDRESS", ":8080")
	t.Setenv("NOTELY_LLM_ENABLED", "true")

	conf, err := Parse()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":8080", conf.HTTP.Address; e != g {
		t.Errorf("address: expected %q, got %q", e, g)
	}

	if !conf.LLM.Enabled {
		t.Errorf("llm should be enabled")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	raw := `
http:
  address: ":9090"
storage:
  database:
    dsn: "/var/lib/notely/notely.sqlite"
`

	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf, err := ParseFile(path)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":9090", conf.HTTP.Address; e != g {
		t.Errorf("address: expected %q, got %q", e, g)
	}

	if e, g := "/var/lib/notely/notely.sqlite", conf.Storage.Database.DSN; e != g {
		t.Errorf("database dsn: expected %q, got %q", e, g)
	}

	// Values absent from the file keep their defaults
	if e, g := "notely.bleve", conf.Storage.Bleve.DSN; e != g {
		t.Errorf("bleve dsn: expected %q, got %q", e, g)
	}
}

func TestParseFileEnvPrecedence(t *testing.T) {
	t.Setenv("NOTELY_HTTP_ADDRESS", ":7070")

	path := filepath.Join(t.TempDir(), "config.yml")

	raw := `
http:
  address: ":9090"
`

	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf, err := ParseFile(path)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// Environment wins over the file
	if e, g := ":7070", conf.HTTP.Address; e != g {
		t.Errorf("address: expected %q, got %q", e, g)
	}
}

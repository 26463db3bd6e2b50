package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig carries the embedded defaults", func(t *testing.T) {
		config := DefaultConfig()
		if config.Database.Driver != "sqlite3" {
			t.Errorf("Driver = %q, want %q", config.Database.Driver, "sqlite3")
		}
		if config.Templates.User.FirstName != "Firstname" {
			t.Errorf("User.FirstName = %q, want %q", config.Templates.User.FirstName, "Firstname")
		}
		if config.Templates.Space.Name["fr"] != "Espace" {
			t.Errorf("Space.Name[fr] = %q, want %q", config.Templates.Space.Name["fr"], "Espace")
		}
	})

	t.Run("LoadConfig parses a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[database]
driver = "postgres"
dsn = "postgres://localhost/platform"

[platform]
server_url = "https://scrubbed.example.org"

[templates.group]
name = "Groupe"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if config.Database.Driver != "postgres" {
			t.Errorf("Driver = %q, want %q", config.Database.Driver, "postgres")
		}
		if config.Platform.ServerURL != "https://scrubbed.example.org" {
			t.Errorf("ServerURL = %q", config.Platform.ServerURL)
		}
		if config.Templates.Group.Name != "Groupe" {
			t.Errorf("Group.Name = %q, want %q", config.Templates.Group.Name, "Groupe")
		}
	})

	t.Run("LoadConfig fails on a missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("CreateConfigFile writes the example and refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile returned error: %v", err)
		}
		if _, err := LoadConfig(path); err != nil {
			t.Errorf("created config does not parse: %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when the config file already exists")
		}
	})
}

func TestNewDatabase(t *testing.T) {
	t.Run("rejects unknown drivers", func(t *testing.T) {
		_, err := NewDatabase("mysql", "root@/platform")
		if !errors.Is(err, ErrUnknownDriver) {
			t.Errorf("expected ErrUnknownDriver, got %v", err)
		}
	})

	t.Run("opens an in-memory sqlite database", func(t *testing.T) {
		db, err := NewDatabase("sqlite3", ":memory:")
		if err != nil {
			t.Fatalf("NewDatabase returned error: %v", err)
		}
		defer db.Close()

		ConfigureDatabase(db, 0, 0)
		var one int
		if err := db.QueryRow("SELECT 1").Scan(&one); err != nil || one != 1 {
			t.Errorf("SELECT 1 failed: %v", err)
		}
	})
}

func TestApplySchema(t *testing.T) {
	db, err := NewDatabase("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("NewDatabase returned error: %v", err)
	}
	defer db.Close()
	ConfigureDatabase(db, 1, 1)

	if err := ApplySchema(db); err != nil {
		t.Fatalf("ApplySchema returned error: %v", err)
	}

	for _, table := range []string{
		"st_domain", "st_user", "st_group", "st_group_user_rel",
		"domainsp_user", "domainsp_group", "domainsp_group_user_rel",
		"st_space", "st_spacei18n", "st_componentinstance", "st_componentinstancei18n",
		"sb_node_node", "sb_node_nodei18n",
		"sb_publication_publi", "sb_publication_publii18n", "sb_publication_publifather",
		"st_userrole", "st_userrole_user_rel", "st_userrole_group_rel",
	} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Errorf("table %s missing after ApplySchema: %v", table, err)
		}
	}
}

func TestGenerateRunID(t *testing.T) {
	a := GenerateRunID()
	b := GenerateRunID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty run ids, got %q and %q", a, b)
	}
}

func TestRemoveComments(t *testing.T) {
	in := "-- header\nCREATE TABLE t (\n  id integer -- key\n)"
	got := removeComments(in)
	want := "CREATE TABLE t (\nid integer\n)"
	if got != want {
		t.Errorf("removeComments = %q, want %q", got, want)
	}
}

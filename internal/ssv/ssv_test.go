package ssv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "github.com/ledantec/dbscrub/internal/testing"
)

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return records
}

func TestFile(t *testing.T) {
	t.Run("writes the header on creation", func(t *testing.T) {
		dir := t.TempDir()
		f, err := Create(dir, "out.ssv", []string{"Id", "Name"})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if err := f.Write([]string{"1", "Space 1"}); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}

		content := tu.MustReadFile(t, filepath.Join(dir, "out.ssv"))
		if !strings.HasPrefix(content, "Id;Name\n") {
			t.Errorf("missing header: %q", content)
		}
		if !strings.Contains(content, "1;Space 1\n") {
			t.Errorf("missing record: %q", content)
		}
	})

	t.Run("quotes fields containing the separator", func(t *testing.T) {
		dir := t.TempDir()
		f, err := Create(dir, "out.ssv", []string{"Name"})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if err := f.Write([]string{"a;b"}); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}

		records := readRecords(t, filepath.Join(dir, "out.ssv"))
		if len(records) != 2 || records[1][0] != "a;b" {
			t.Errorf("record did not round-trip: %v", records)
		}
	})

	t.Run("fails on an unwritable directory", func(t *testing.T) {
		if _, err := Create(filepath.Join(t.TempDir(), "missing"), "out.ssv", []string{"Id"}); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestLogger(t *testing.T) {
	t.Run("opens every audit file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "audit")
		l, err := Open(dir)
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		if err := l.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}

		tu.AssertDirExists(t, dir)
		for _, name := range []string{"users.ssv", "spaces.ssv", "components.ssv", "nodes.ssv", "publications.ssv", "acl.ssv"} {
			tu.AssertFileExists(t, filepath.Join(dir, name))
		}
	})

	t.Run("records are flushed on close", func(t *testing.T) {
		dir := t.TempDir()
		l, err := Open(dir)
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}

		if err := l.User(4242, "Firstname4242", "Lastname4242", "Firstname4242.Lastname4242", "password", 2); err != nil {
			t.Fatalf("User returned error: %v", err)
		}
		if err := l.Space("WA3", "", "Space 3"); err != nil {
			t.Fatalf("Space returned error: %v", err)
		}
		if err := l.Component("kmelia21", "WA3", "kmelia 21"); err != nil {
			t.Fatalf("Component returned error: %v", err)
		}
		if err := l.Node(7, "kmelia21", 0, "Folder 7"); err != nil {
			t.Fatalf("Node returned error: %v", err)
		}
		if err := l.Publication(33, "kmelia21", "7", "Publication 33"); err != nil {
			t.Fatalf("Publication returned error: %v", err)
		}
		if err := l.UserACE(21, 4242, "admin"); err != nil {
			t.Fatalf("UserACE returned error: %v", err)
		}
		if err := l.GroupACE(21, 9, "reader"); err != nil {
			t.Fatalf("GroupACE returned error: %v", err)
		}
		if err := l.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}

		users := readRecords(t, filepath.Join(dir, "users.ssv"))
		if len(users) != 2 {
			t.Fatalf("got %d user records, want header plus one", len(users))
		}
		want := []string{"4242", "Firstname4242", "Lastname4242", "Firstname4242.Lastname4242", "password", "2"}
		for i, field := range want {
			if users[1][i] != field {
				t.Errorf("users[1][%d] = %q, want %q", i, users[1][i], field)
			}
		}

		acl := readRecords(t, filepath.Join(dir, "acl.ssv"))
		if len(acl) != 3 {
			t.Fatalf("got %d acl records, want header plus two", len(acl))
		}
		if acl[1][1] != "4242" || acl[1][2] != "" {
			t.Errorf("user entry malformed: %v", acl[1])
		}
		if acl[2][1] != "" || acl[2][2] != "9" {
			t.Errorf("group entry malformed: %v", acl[2])
		}
	})

	t.Run("creates the audit directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "deep", "audit")
		l, err := Open(dir)
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		l.Close()
		tu.AssertDirExists(t, dir)
	})
}

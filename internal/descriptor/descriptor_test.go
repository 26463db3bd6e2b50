package descriptor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magiconair/properties"

	"github.com/ledantec/dbscrub/internal/anonym"
	"github.com/ledantec/dbscrub/internal/shared"
	tu "github.com/ledantec/dbscrub/internal/testing"
)

func setupHome(t *testing.T) (string, string, string) {
	t.Helper()
	home := t.TempDir()
	domainsDir := filepath.Join(home, "properties", "org", "silverpeas", "domains")
	authDir := filepath.Join(home, "properties", "org", "silverpeas", "authentication")
	for _, dir := range []string{domainsDir, authDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	return home, domainsDir, authDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

const domainTemplateContent = `domain.driver = org.silverpeas.core.admin.domain.driver.sqldriver.SQLDriver
database.SQLUserTableName = DomainSQL_User
database.SQLGroupTableName = DomainSQL_Group
database.SQLUserGroupTableName = DomainSQL_Group_User_Rel
`

const authTemplateContent = `autServersCount = 1
autServer0.SQLUserTableName = DomainSQL_User
`

func TestSynchronizer(t *testing.T) {
	logger := shared.NewLogger(nil)

	t.Run("disabled without a platform home", func(t *testing.T) {
		s := NewSynchronizer("", logger)
		if s.Enabled() {
			t.Error("empty home should disable the synchronizer")
		}
		d := anonym.NewDomain(2, shared.DomainTemplates{}, "")
		if err := s.Sync("org.silverpeas.domains.domainCorp", "autDomainCorp", d); err != nil {
			t.Errorf("disabled Sync returned error: %v", err)
		}
	})

	t.Run("rewrites descriptors and removes the originals", func(t *testing.T) {
		home, domainsDir, authDir := setupHome(t)
		writeFile(t, filepath.Join(domainsDir, domainTemplate), domainTemplateContent)
		writeFile(t, filepath.Join(authDir, authTemplate), authTemplateContent)
		writeFile(t, filepath.Join(domainsDir, "domainCorp.properties"), "domain.driver = com.example.LDAPDriver\n")
		writeFile(t, filepath.Join(authDir, "autDomainCorp.properties"), "autServer0.type = ldap\n")

		d := anonym.NewDomain(2, shared.DomainTemplates{}, "")
		s := NewSynchronizer(home, logger)
		if err := s.Sync("org.silverpeas.domains.domainCorp", "autDomainCorp", d); err != nil {
			t.Fatalf("Sync returned error: %v", err)
		}

		newDomain := filepath.Join(domainsDir, "domainDomain2.properties")
		tu.AssertFileExists(t, newDomain)
		p, err := properties.LoadFile(newDomain, properties.ISO_8859_1)
		if err != nil {
			t.Fatalf("failed to load new descriptor: %v", err)
		}
		if got := p.GetString("database.SQLUserTableName", ""); got != "domainDomain2_user" {
			t.Errorf("SQLUserTableName = %q", got)
		}
		if got := p.GetString("database.SQLGroupTableName", ""); got != "domainDomain2_group" {
			t.Errorf("SQLGroupTableName = %q", got)
		}
		if got := p.GetString("database.SQLUserGroupTableName", ""); got != "domainDomain2_group_user_rel" {
			t.Errorf("SQLUserGroupTableName = %q", got)
		}

		newAuth := filepath.Join(authDir, "autDomainDomain2.properties")
		tu.AssertFileExists(t, newAuth)
		ap, err := properties.LoadFile(newAuth, properties.ISO_8859_1)
		if err != nil {
			t.Fatalf("failed to load new auth descriptor: %v", err)
		}
		if got := ap.GetString("autServer0.SQLUserTableName", ""); got != "domainDomain2_user" {
			t.Errorf("auth SQLUserTableName = %q", got)
		}

		if _, err := os.Stat(filepath.Join(domainsDir, "domainCorp.properties")); !os.IsNotExist(err) {
			t.Error("old domain descriptor should be removed")
		}
		if _, err := os.Stat(filepath.Join(authDir, "autDomainCorp.properties")); !os.IsNotExist(err) {
			t.Error("old auth descriptor should be removed")
		}
	})

	t.Run("missing descriptor files only warn", func(t *testing.T) {
		home, domainsDir, authDir := setupHome(t)
		writeFile(t, filepath.Join(domainsDir, domainTemplate), domainTemplateContent)
		writeFile(t, filepath.Join(authDir, authTemplate), authTemplateContent)

		d := anonym.NewDomain(3, shared.DomainTemplates{}, "")
		s := NewSynchronizer(home, logger)
		if err := s.Sync("org.silverpeas.domains.domainGone", "autDomainGone", d); err != nil {
			t.Errorf("Sync should skip missing descriptors, got %v", err)
		}
		if _, err := os.Stat(filepath.Join(domainsDir, "domainDomain3.properties")); !os.IsNotExist(err) {
			t.Error("no new descriptor should be written when the old one is missing")
		}
	})

	t.Run("missing template is an error", func(t *testing.T) {
		home, domainsDir, authDir := setupHome(t)
		writeFile(t, filepath.Join(domainsDir, "domainCorp.properties"), "domain.driver = com.example.LDAPDriver\n")
		writeFile(t, filepath.Join(authDir, "autDomainCorp.properties"), "autServer0.type = ldap\n")

		d := anonym.NewDomain(2, shared.DomainTemplates{}, "")
		s := NewSynchronizer(home, logger)
		err := s.Sync("org.silverpeas.domains.domainCorp", "autDomainCorp", d)
		if err == nil {
			t.Fatal("expected error when the template is missing")
		}
	})
}

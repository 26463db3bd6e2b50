// package descriptor keeps the platform's domain descriptor files in step
// with the database. Each user domain is described by two Java properties
// files under the platform home; after a domain is migrated onto SQL storage
// those files must name the new tables and the new SQL driver settings.
package descriptor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/magiconair/properties"

	"github.com/ledantec/dbscrub/internal/anonym"
	"github.com/ledantec/dbscrub/internal/shared"
)

const (
	domainTemplate = "domainSQL.properties"
	authTemplate   = "autDomainSQL.properties"
)

// Synchronizer rewrites domain descriptor files under the platform home.
// A zero home disables it: the database can be scrubbed from a host that
// does not mount the platform's filesystem.
type Synchronizer struct {
	home   string
	logger *log.Logger
}

// NewSynchronizer returns a Synchronizer rooted at the given platform home.
func NewSynchronizer(home string, logger *log.Logger) *Synchronizer {
	return &Synchronizer{home: home, logger: logger}
}

// Enabled reports whether a platform home is configured.
func (s *Synchronizer) Enabled() bool {
	return s.home != ""
}

// Sync replaces the descriptor files of a migrated domain with SQL-driver
// descriptors naming its new tables. oldDescriptor is the domain's previous
// propfilename, oldAuthServer its previous authentication server name.
// Missing descriptor files are logged and skipped: filesystem state is
// best-effort next to the database transaction.
func (s *Synchronizer) Sync(oldDescriptor, oldAuthServer string, d anonym.Domain) error {
	if !s.Enabled() {
		return nil
	}

	domainsDir := filepath.Join(s.home, "properties", "org", "silverpeas", "domains")
	authDir := filepath.Join(s.home, "properties", "org", "silverpeas", "authentication")

	oldDomainFile := filepath.Join(domainsDir, descriptorFile(oldDescriptor))
	oldAuthFile := filepath.Join(authDir, oldAuthServer+".properties")
	for _, path := range []string{oldDomainFile, oldAuthFile} {
		if _, err := os.Stat(path); err != nil {
			s.logger.Warn("descriptor file not found, skipping domain descriptors",
				"domain", d.ID, "path", path)
			return nil
		}
	}

	if err := s.rewrite(filepath.Join(domainsDir, domainTemplate), filepath.Join(domainsDir, d.DescriptorName), map[string]string{
		"database.SQLUserTableName":      d.UsersTable,
		"database.SQLGroupTableName":     d.GroupsTable,
		"database.SQLUserGroupTableName": d.RelsTable,
	}); err != nil {
		return fmt.Errorf("failed to write domain descriptor for domain %d: %w", d.ID, err)
	}

	if err := s.rewrite(filepath.Join(authDir, authTemplate), filepath.Join(authDir, d.AuthDescriptorName), map[string]string{
		"autServer0.SQLUserTableName": d.UsersTable,
	}); err != nil {
		return fmt.Errorf("failed to write authentication descriptor for domain %d: %w", d.ID, err)
	}

	for _, path := range []string{oldDomainFile, oldAuthFile} {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove old descriptor %s: %w", path, err)
		}
	}
	return nil
}

// rewrite loads a descriptor template, overrides the storage keys and stores
// the result under the new descriptor name.
func (s *Synchronizer) rewrite(templatePath, destPath string, overrides map[string]string) error {
	if _, err := os.Stat(templatePath); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrTemplateMissing, templatePath)
	}

	p, err := properties.LoadFile(templatePath, properties.ISO_8859_1)
	if err != nil {
		return fmt.Errorf("failed to load template %s: %w", templatePath, err)
	}
	for key, value := range overrides {
		if err := p.SetValue(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create descriptor %s: %w", destPath, err)
	}
	if _, err := p.Write(f, properties.ISO_8859_1); err != nil {
		f.Close()
		return fmt.Errorf("failed to write descriptor %s: %w", destPath, err)
	}
	return f.Close()
}

// descriptorFile maps a domain's propfilename, a dotted resource path like
// "org.silverpeas.domains.domainSP", to the file holding it.
func descriptorFile(propFileName string) string {
	if i := strings.LastIndex(propFileName, "."); i >= 0 {
		propFileName = propFileName[i+1:]
	}
	return propFileName + ".properties"
}

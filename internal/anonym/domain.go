package anonym

import (
	"fmt"

	"github.com/ledantec/dbscrub/internal/shared"
)

// SQLDriverClass is the driver class every anonymized domain ends up with:
// directory-backed domains are converted to SQL-backed ones during a run.
const SQLDriverClass = "org.silverpeas.core.admin.domain.driver.sqldriver.SQLDriver"

// Domain holds the placeholder values and the derived storage names for a
// scrubbed user domain. The technical name seeds the new table names and the
// descriptor file names.
type Domain struct {
	ID            int
	Name          string
	TechnicalName string
	Type          string
	ServerURL     string
	Driver        string

	UsersTable  string
	GroupsTable string
	RelsTable   string

	AuthServerName     string
	AuthDescriptorName string
	DescriptorName     string
}

// NewDomain builds the placeholder values for the domain with the given id.
func NewDomain(id int, tpl shared.DomainTemplates, serverURL string) Domain {
	prefix := orDefault(tpl.Name, "Domain")
	technical := fmt.Sprintf("%s%d", prefix, id)
	tablePrefix := "domain" + technical + "_"

	return Domain{
		ID:            id,
		Name:          entityName(tpl.Name, "Domain", id),
		TechnicalName: technical,
		Type:          "org.silverpeas.domains.domain" + technical,
		ServerURL:     serverURL,
		Driver:        SQLDriverClass,

		UsersTable:  tablePrefix + "user",
		GroupsTable: tablePrefix + "group",
		RelsTable:   tablePrefix + "group_user_rel",

		AuthServerName:     "autDomain" + technical,
		AuthDescriptorName: "autDomain" + technical + ".properties",
		DescriptorName:     "domain" + technical + ".properties",
	}
}

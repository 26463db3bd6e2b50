package ssv

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Logger aggregates the audit files of one run.
type Logger struct {
	users        *File
	spaces       *File
	components   *File
	nodes        *File
	publications *File
	acl          *File
}

// Open creates the audit directory if needed and every audit file in it. On
// any failure the files already opened are closed before returning.
func Open(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory %s: %w", dir, err)
	}

	l := &Logger{}
	files := []struct {
		dest   **File
		name   string
		header []string
	}{
		{&l.users, "users.ssv", []string{"Id", "Firstname", "Lastname", "Login", "Password", "DomainId"}},
		{&l.spaces, "spaces.ssv", []string{"Id", "ParentId", "Name"}},
		{&l.components, "components.ssv", []string{"Id", "SpaceId", "Name"}},
		{&l.nodes, "nodes.ssv", []string{"Id", "InstanceId", "ParentId", "Name"}},
		{&l.publications, "publications.ssv", []string{"Id", "InstanceId", "NodeId", "Name"}},
		{&l.acl, "acl.ssv", []string{"InstanceId", "UserId", "GroupId", "RoleName"}},
	}

	for _, def := range files {
		f, err := Create(dir, def.name, def.header)
		if err != nil {
			l.Close()
			return nil, err
		}
		*def.dest = f
	}
	return l, nil
}

// Close flushes and closes every audit file, returning the first error met.
func (l *Logger) Close() error {
	var errs []error
	for _, f := range []*File{l.users, l.spaces, l.components, l.nodes, l.publications, l.acl} {
		if f == nil {
			continue
		}
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}

// User records the placeholder identity given to a user, plaintext password
// included.
func (l *Logger) User(id int, firstName, lastName, login, password string, domainID int) error {
	return l.users.Write([]string{strconv.Itoa(id), firstName, lastName, login, password, strconv.Itoa(domainID)})
}

// Space records the placeholder name given to a space. parentID is empty for
// root spaces.
func (l *Logger) Space(id, parentID, name string) error {
	return l.spaces.Write([]string{id, parentID, name})
}

// Component records the placeholder name given to a component instance.
func (l *Logger) Component(id, spaceID, name string) error {
	return l.components.Write([]string{id, spaceID, name})
}

// Node records the placeholder name given to a categorization node.
func (l *Logger) Node(id int, instanceID string, parentID int, name string) error {
	return l.nodes.Write([]string{strconv.Itoa(id), instanceID, strconv.Itoa(parentID), name})
}

// Publication records the placeholder name given to a publication. nodeID is
// empty for publications outside any node.
func (l *Logger) Publication(id int, instanceID, nodeID, name string) error {
	return l.publications.Write([]string{strconv.Itoa(id), instanceID, nodeID, name})
}

// UserACE records a role granted to a user on a component instance.
func (l *Logger) UserACE(instanceID, userID int, role string) error {
	return l.acl.Write([]string{strconv.Itoa(instanceID), strconv.Itoa(userID), "", role})
}

// GroupACE records a role granted to a group on a component instance.
func (l *Logger) GroupACE(instanceID, groupID int, role string) error {
	return l.acl.Write([]string{strconv.Itoa(instanceID), "", strconv.Itoa(groupID), role})
}

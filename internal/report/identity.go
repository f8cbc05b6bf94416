package report

import (
	"errors"
	"strings"
)

// ErrIdentityNotFound is returned when a report has no "Name: " line.
// The API layer maps it to a 400 since it is a property of the input.
var ErrIdentityNotFound = errors.New("patient name not found")

// Identity holds the patient name extracted from a single report.
type Identity struct {
	FirstName string
	LastName  string
}

const namePrefix = "Name: "

// ExtractIdentity scans blocks in order for the first one starting with
// "Name: " and splits the remainder into first and last name. The first
// whitespace-delimited token is the first name; everything after it is the
// last name.
func ExtractIdentity(doc Document) (Identity, error) {
	for _, block := range doc.Blocks {
		if !strings.HasPrefix(block.Text, namePrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(block.Text, namePrefix))
		if len(fields) == 0 {
			return Identity{}, ErrIdentityNotFound
		}
		return Identity{
			FirstName: fields[0],
			LastName:  strings.Join(fields[1:], " "),
		}, nil
	}
	return Identity{}, ErrIdentityNotFound
}

package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Entity is a persisted catalog record with a unique key and a version
// counter that is bumped on every update.
type Entity interface {
	EntityID() string
	SetEntityID(id string)
	UniqueKey() string
	EntityVersion() int
}

// Document holds the fields every catalog record shares.
type Document struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	Version int    `json:"version" bson:"__v"`
}

func (d *Document) EntityID() string      { return d.ID }
func (d *Document) SetEntityID(id string) { d.ID = id }
func (d *Document) EntityVersion() int    { return d.Version }

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ValidateID reports whether id has the store's 24 hex character format.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// CanonicalID validates id and returns it in the lowercase form the store
// reports ids in.
func CanonicalID(id string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}
	return strings.ToLower(id), nil
}

// Mail is an outgoing HTML notification.
type Mail struct {
	To      string
	Subject string
	Body    string
}

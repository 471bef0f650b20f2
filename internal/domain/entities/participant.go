package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// PlaceholderContactDomain is used for participants without an email
	PlaceholderContactDomain = "example.com"

	// PlaceholderContactID is the contact id written for participants without an email
	PlaceholderContactID = "no-email@" + PlaceholderContactDomain

	// UnknownParticipant labels reactions with no participant attached
	UnknownParticipant = "unknown"
)

// Participant is a roster entry. Name is unique within the roster.
type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ContactID returns the email or the placeholder when it is blank
func (p Participant) ContactID() string {
	if strings.TrimSpace(p.Email) == "" {
		return PlaceholderContactID
	}
	return p.Email
}

// Normalize trims the fields and fills the placeholder contact
func (p Participant) Normalize() Participant {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	if p.Email == "" {
		p.Email = PlaceholderContactID
	}
	return p
}

// UnmarshalJSON accepts both a bare name string and a {name, email} object
func (p *Participant) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Participant{Name: name}.Normalize()
		return nil
	}

	type plain Participant
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("participant must be a name or {name, email}: %w", err)
	}
	*p = Participant(v).Normalize()
	return nil
}

// Roster is an ordered participant list keyed by display name
type Roster []Participant

// Find returns the participant with the given display name
func (r Roster) Find(name string) (Participant, bool) {
	for _, p := range r {
		if p.Name == name {
			return p, true
		}
	}
	return Participant{}, false
}

// Contains reports whether the name is on the roster
func (r Roster) Contains(name string) bool {
	_, ok := r.Find(name)
	return ok
}

// Without returns a copy of the roster without the named participant
func (r Roster) Without(name string) Roster {
	out := make(Roster, 0, len(r))
	for _, p := range r {
		if p.Name != name {
			out = append(out, p)
		}
	}
	return out
}

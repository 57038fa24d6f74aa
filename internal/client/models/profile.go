package models

import "strings"

// Profile is the user-visible account record, keyed by email.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic,omitempty"`
	DOB        string `json:"dob,omitempty"`
	College    string `json:"college,omitempty"`
}

// Profiles maps an email to its profile.
type Profiles map[string]Profile

// DefaultProfile names the user after the local part of their email.
func DefaultProfile(email string) Profile {
	name, _, _ := strings.Cut(email, "@")
	return Profile{Name: name, Email: email}
}

// Initials returns up to two upper-case letters for compact display.
func (p Profile) Initials() string {
	fields := strings.Fields(p.Name)
	switch len(fields) {
	case 0:
		return ""
	case 1:
		r := []rune(fields[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	default:
		first := []rune(fields[0])[0]
		last := []rune(fields[len(fields)-1])[0]
		return strings.ToUpper(string([]rune{first, last}))
	}
}

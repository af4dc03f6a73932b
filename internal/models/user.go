package models

import "strings"

// User is a catalogue member who can like films and befriend other users.
type User struct {
	ID       int64  `json:"id" yaml:"-"`
	Email    string `json:"email" yaml:"email" validate:"required,contains=@"`
	Login    string `json:"login" yaml:"login" validate:"required,no_whitespace"`
	Name     string `json:"name" yaml:"name"`
	Birthday Date   `json:"birthday" yaml:"birthday" validate:"omitempty,not_future"`
	Friends  IDSet  `json:"friends" yaml:"-" validate:"-"`
}

// ApplyDefaults fills the display name from the login when it is blank.
func (u *User) ApplyDefaults() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// Clone returns a deep copy so callers never share the friend set.
func (u *User) Clone() *User {
	out := *u
	out.Friends = u.Friends.Clone()
	return &out
}

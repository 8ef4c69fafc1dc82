package domain

// User is a registered participant profile. Only Name and Surname are
// required; everything else is whatever the signup form collected.
// Duplicate (name, surname) pairs are allowed and never merged.
type User struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Age      string `json:"age,omitempty"`
	School   string `json:"school,omitempty"`
	Birthday string `json:"birthday,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

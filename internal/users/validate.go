package users

import (
	"regexp"
	"strings"
)

const maxNameLength = 50

// emailPattern matches a simple local@domain.tld address
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidateUser checks a candidate record against the field rules and returns
// the violated fields, one entry per field, in declaration order. An empty
// result means the record is valid. Age is a pointer so a missing value can
// be reported as required rather than out of range.
func ValidateUser(name, email string, age *int, role string) []FieldError {
	var fields []FieldError

	name = strings.TrimSpace(name)
	if name == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required"})
	} else if len([]rune(name)) > maxNameLength {
		fields = append(fields, FieldError{Field: "name", Message: "Name cannot be more than 50 characters"})
	}

	email = strings.TrimSpace(email)
	if email == "" {
		fields = append(fields, FieldError{Field: "email", Message: "Email is required"})
	} else if !emailPattern.MatchString(email) {
		fields = append(fields, FieldError{Field: "email", Message: "Please enter a valid email"})
	}

	if age == nil {
		fields = append(fields, FieldError{Field: "age", Message: "Age is required"})
	} else if *age < 1 {
		fields = append(fields, FieldError{Field: "age", Message: "Age must be at least 1"})
	} else if *age > 120 {
		fields = append(fields, FieldError{Field: "age", Message: "Age must be less than 120"})
	}

	if role == "" {
		fields = append(fields, FieldError{Field: "role", Message: "Role is required"})
	} else if !Role(role).IsValid() {
		fields = append(fields, FieldError{Field: "role", Message: "Role must be one of Admin, User, Manager"})
	}

	return fields
}

// NormalizeEmail lower-cases and trims an email for storage and comparison
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package users

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name       string
		userName   string
		email      string
		age        *int
		role       string
		wantFields []string
	}{
		{
			name:       "valid record",
			userName:   "Ada",
			email:      "ada@x.co",
			age:        intPtr(30),
			role:       "Admin",
			wantFields: nil,
		},
		{
			name:       "blank name",
			userName:   "",
			email:      "a@b.co",
			age:        intPtr(30),
			role:       "User",
			wantFields: []string{"name"},
		},
		{
			name:       "whitespace only name",
			userName:   "   ",
			email:      "a@b.co",
			age:        intPtr(30),
			role:       "User",
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			userName:   strings.Repeat("a", 51),
			email:      "a@b.co",
			age:        intPtr(30),
			role:       "User",
			wantFields: []string{"name"},
		},
		{
			name:       "name exactly at limit",
			userName:   strings.Repeat("a", 50),
			email:      "a@b.co",
			age:        intPtr(30),
			role:       "User",
			wantFields: nil,
		},
		{
			name:       "missing email",
			userName:   "Ada",
			email:      "",
			age:        intPtr(30),
			role:       "User",
			wantFields: []string{"email"},
		},
		{
			name:       "malformed email",
			userName:   "Ada",
			email:      "not-an-email",
			age:        intPtr(30),
			role:       "User",
			wantFields: []string{"email"},
		},
		{
			name:       "email with dotted local part",
			userName:   "Ada",
			email:      "ada.lovelace@calc.engine.org",
			age:        intPtr(30),
			role:       "User",
			wantFields: nil,
		},
		{
			name:       "missing age",
			userName:   "Ada",
			email:      "ada@x.co",
			age:        nil,
			role:       "User",
			wantFields: []string{"age"},
		},
		{
			name:       "age below range",
			userName:   "Ada",
			email:      "ada@x.co",
			age:        intPtr(0),
			role:       "User",
			wantFields: []string{"age"},
		},
		{
			name:       "age above range",
			userName:   "Ada",
			email:      "ada@x.co",
			age:        intPtr(200),
			role:       "User",
			wantFields: []string{"age"},
		},
		{
			name:       "age at boundaries",
			userName:   "Ada",
			email:      "ada@x.co",
			age:        intPtr(120),
			role:       "User",
			wantFields: nil,
		},
		{
			name:       "missing role",
			userName:   "Ada",
			email:      "ada@x.co",
			age:        intPtr(30),
			role:       "",
			wantFields: []string{"role"},
		},
		{
			name:       "unknown role",
			userName:   "Ada",
			email:      "ada@x.co",
			age:        intPtr(30),
			role:       "Superuser",
			wantFields: []string{"role"},
		},
		{
			name:       "everything wrong at once",
			userName:   "",
			email:      "bad",
			age:        intPtr(0),
			role:       "nope",
			wantFields: []string{"name", "email", "age", "role"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ValidateUser(tt.userName, tt.email, tt.age, tt.role)

			var got []string
			for _, f := range fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestValidationFailedErrorJoinsMessages(t *testing.T) {
	fields := ValidateUser("", "bad", intPtr(30), "User")
	err := NewValidationFailedError(fields)

	assert.Equal(t, "Name is required, Please enter a valid email", err.Message)
	assert.Equal(t, ErrorTypeValidationFailed, err.Type)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@x.co", NormalizeEmail("  ADA@X.Co "))
}

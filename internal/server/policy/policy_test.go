package policy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{name: "empty", password: "", want: ErrPasswordMissing},
		{name: "minimal strong", password: "Abcdef1!", want: nil},
		{name: "all upper with digit and symbol", password: "ABCDEFG1!", want: nil},
		{name: "no upper no special", password: "abcdefg1", want: ErrPasswordTooWeak},
		{name: "no digit", password: "Abcdefg!", want: ErrPasswordTooWeak},
		{name: "no upper", password: "abcdef1!", want: ErrPasswordTooWeak},
		{name: "underscore is not special", password: "Abcdef1_", want: ErrPasswordTooWeak},
		{name: "space is not special", password: "Abcd ef1", want: ErrPasswordTooWeak},
		{name: "inner space allowed", password: "Abc def1!", want: nil},
		{name: "newline rejected", password: "Abcdef1!\n", want: ErrPasswordTooWeak},
		{name: "non-ascii counts as special", password: "Abcdef1é", want: nil},
		{name: "seven characters", password: "Abcde1!", want: ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidatePassword_ShortPasswordsAreAlwaysWeak(t *testing.T) {
	pool := "A1!aZ9#b"
	for n := 1; n < MinPasswordLength; n++ {
		for start := 0; start < len(pool); start++ {
			p := strings.Repeat(pool, 2)[start : start+n]
			assert.ErrorIs(t, ValidatePassword(p), ErrPasswordTooWeak, "password %q", p)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last@example.org", "x-y_z@my-host.io", "A.B@c.de"}
	invalid := []string{"", "plain", "a@b", "a@b.c", "a@b.COM", "a@sub.b.com", "a b@c.com", "@b.com", "a@.com", "a@b.com\n"}

	for _, e := range valid {
		assert.True(t, ValidEmail(e), "expected %q to be valid", e)
	}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), "expected %q to be invalid", e)
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	tests := []struct {
		name                      string
		username, email, password string
		want                      error
	}{
		{name: "everything wrong", username: " ", email: "bad", password: "", want: ErrPasswordMissing},
		{name: "weak password beats blank username", username: "", email: "bad", password: "weak", want: ErrPasswordTooWeak},
		{name: "blank username beats bad email", username: "\t ", email: "bad", password: "Secret1!", want: ErrUsernameMissing},
		{name: "bad email", username: "alice", email: "alice@", password: "Secret1!", want: ErrEmailInvalid},
		{name: "accepted", username: "alice", email: "alice@example.com", password: "Secret1!", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.username, tt.email, tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_IsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, Validate("bob", "bob@x", "Secret1!"), ErrEmailInvalid)
	}
}

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vmtecnologia/usersvc/internal/server/policy"
)

func stubPasswords(t *testing.T, inputs ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(inputs) {
			return nil, errors.New("no more input")
		}
		v := inputs[i]
		i++
		return []byte(v), nil
	}
}

func TestRun_PrintsHash(t *testing.T) {
	stubPasswords(t, "Secret1!", "Secret1!")

	var out bytes.Buffer
	hash, err := run(&out, bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Secret1!")))
	assert.Contains(t, out.String(), "Enter password: ")
	assert.Contains(t, out.String(), "Repeat password: ")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		want   error
	}{
		{"mismatch", []string{"Secret1!", "Secret2!"}, errMismatch},
		{"weak", []string{"secret", "secret"}, policy.ErrPasswordTooWeak},
		{"empty", []string{"", ""}, policy.ErrPasswordMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPasswords(t, tt.inputs...)
			_, err := run(&bytes.Buffer{}, bcrypt.MinCost)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRun_ReadError(t *testing.T) {
	stubPasswords(t)
	_, err := run(&bytes.Buffer{}, bcrypt.MinCost)
	require.Error(t, err)
}

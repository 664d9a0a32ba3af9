// Command hashpw prints a bcrypt hash for a password typed at the terminal,
// for seeding users rows by hand.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/vmtecnologia/usersvc/internal/common"
	"github.com/vmtecnologia/usersvc/internal/server/auth"
	"github.com/vmtecnologia/usersvc/internal/server/policy"
)

var errMismatch = errors.New("passwords do not match")

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	cost := flag.Int("b", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	hash, err := run(os.Stderr, *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

func run(w io.Writer, cost int) (string, error) {
	first, err := prompt(w, "Enter password: ")
	if err != nil {
		return "", err
	}
	defer common.Wipe(first)
	second, err := prompt(w, "Repeat password: ")
	if err != nil {
		return "", err
	}
	defer common.Wipe(second)
	if !bytes.Equal(first, second) {
		return "", errMismatch
	}

	if err := policy.ValidatePassword(string(first)); err != nil {
		return "", err
	}

	return auth.NewBcryptHasher(cost).Hash(string(first))
}

func prompt(w io.Writer, text string) ([]byte, error) {
	if _, err := fmt.Fprint(w, text); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

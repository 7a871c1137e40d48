//go:build !tinygo

// Command mkpasswd prints a bcrypt hash for the -password-hash flag.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"smkshell/smk/services/shell"
)

func main() {
	var (
		check = flag.String("check", "", "Verify the password against this hash instead of hashing it.")
	)
	flag.Parse()

	password, err := readPassword(os.Stdin, os.Stderr)
	if err != nil {
		fatalf("read password: %v", err)
	}

	if *check != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(*check), []byte(password)); err != nil {
			fatalf("mismatch: %v", err)
		}
		fmt.Println("ok")
		return
	}

	hash, err := shell.HashPassword(password)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(hash)
}

// readPassword prompts without echo on a terminal and reads one line
// otherwise.
func readPassword(in *os.File, prompt io.Writer) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		return string(b), err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// ABOUTME: Authentication CLI commands
// ABOUTME: Register, login, logout, and whoami over the local account list
package cli

import (
	"flag"
	"fmt"
	"strings"
	"syscall"

	"github.com/harperreed/mobitec/auth"
	"github.com/harperreed/mobitec/store"
	"golang.org/x/term"
)

// readPassword prompts for a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(syscall.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()
	return string(passwordBytes), nil
}

// RegisterCommand creates a local account.
func RegisterCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "Your name (required)")
	email := fs.String("email", "", "Email address (required)")
	_ = fs.Parse(args)

	if *name == "" || *email == "" {
		return fmt.Errorf("--name and --email are required")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	service := auth.NewService(s)
	user, err := service.Register(*name, *email, password)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Account created: %s <%s>\n", user.Name, user.Email)
	return nil
}

// LoginCommand checks credentials and stores the session.
func LoginCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address")
	_ = fs.Parse(args)

	loginEmail := *email
	if loginEmail == "" {
		fmt.Print("Email: ")
		if _, err := fmt.Scanln(&loginEmail); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
		loginEmail = strings.TrimSpace(loginEmail)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	service := auth.NewService(s)
	user, err := service.Login(loginEmail, password)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Logged in as %s\n", user.Name)
	return nil
}

// LogoutCommand clears the session.
func LogoutCommand(s *store.Store, args []string) error {
	service := auth.NewService(s)
	if err := service.Logout(); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	fmt.Println("✓ Logged out")
	return nil
}

// WhoamiCommand prints the current user.
func WhoamiCommand(s *store.Store, args []string) error {
	service := auth.NewService(s)
	user, err := service.Current()
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "lifecycle":
		lifecycleCmd(apiURL, args)
	case "populate":
		populateCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Gameboxed Smoke Client - Development tool for exercising the API

USAGE:
  smoke <command> [options]

COMMANDS:
  lifecycle  Walk one account through register, login, check, logout and
             verify the token is rejected afterwards
  populate   Register and log in N throwaway accounts
  help       Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Verify the auth lifecycle against a running server
  smoke lifecycle

  # Create 5 throwaway accounts with live sessions
  smoke populate --count=5`)
}

func lifecycleCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("lifecycle", flag.ExitOnError)
	fs.Parse(args)

	client := NewAPIClient(apiURL)
	suffix := uuid.New().String()[:8]
	username := fmt.Sprintf("smoke_%s", suffix)
	password := "smoke-password-123"

	fmt.Printf("Registering %s...\n", username)
	if err := client.Register(username, username+"@example.com", password); err != nil {
		fail("register: %v", err)
	}

	fmt.Println("Logging in...")
	token, err := client.Login(username, password)
	if err != nil {
		fail("login: %v", err)
	}

	check, status, err := client.Check(token)
	if err != nil {
		fail("check: %v", err)
	}
	if status != 200 {
		fail("check returned %d with a fresh token", status)
	}
	fmt.Printf("Authenticated as %s (roles: %v)\n", check.Username, check.Roles)

	fmt.Println("Logging out...")
	if err := client.Logout(token); err != nil {
		fail("logout: %v", err)
	}

	_, status, err = client.Check(token)
	if err != nil {
		fail("post-logout check: %v", err)
	}
	if status != 401 {
		fail("revoked token still accepted, check returned %d", status)
	}
	fmt.Println("Revoked token rejected. Lifecycle OK.")
}

func populateCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("populate", flag.ExitOnError)
	count := fs.Int("count", 5, "Number of accounts to create")
	fs.Parse(args)

	client := NewAPIClient(apiURL)

	for i := 0; i < *count; i++ {
		suffix := uuid.New().String()[:8]
		username := fmt.Sprintf("player_%s", suffix)
		password := "player-password-123"

		if err := client.Register(username, username+"@example.com", password); err != nil {
			fail("register %s: %v", username, err)
		}
		if _, err := client.Login(username, password); err != nil {
			fail("login %s: %v", username, err)
		}
		fmt.Printf("Created %s with an active session\n", username)
	}
}

func fail(format string, args ...interface{}) {
	fmt.Printf("Error: "+format+"\n", args...)
	os.Exit(1)
}

package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"cinema-checkout-cli/config"
	"cinema-checkout-cli/service"
	"cinema-checkout-cli/store"
	"cinema-checkout-cli/tui"
)

const appName = "cinema-checkout-cli"

var (
	version = "dev"
	commit  = "none"
)

func printUsage(out *os.File) {
	fmt.Fprintf(out, "Usage: %s [--version] <session-id>\n", appName)
	fmt.Fprintln(out, "The session id may also be set via CINEMA_SESSION_ID.")
}

func printVersion() {
	fmt.Printf("%s %s", appName, version)
	if commit != "none" && commit != "" {
		fmt.Printf(" (%s)", commit)
	}
	fmt.Println()
}

// handleArgs resolves the session to open. A zero return means a flag was
// handled and the program should exit.
func handleArgs(args []string) int64 {
	var positional []string
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			printUsage(os.Stdout)
			return 0
		case "-v", "--version", "version":
			printVersion()
			return 0
		default:
			positional = append(positional, arg)
		}
	}

	raw := os.Getenv("CINEMA_SESSION_ID")
	if len(positional) > 0 {
		raw = positional[0]
	}
	if raw == "" {
		fmt.Fprintln(os.Stderr, "Missing session id.")
		printUsage(os.Stderr)
		printRecentSessions(os.Stderr)
		os.Exit(2)
	}

	sessionID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || sessionID <= 0 {
		fmt.Fprintf(os.Stderr, "Invalid session id: %s\n", raw)
		os.Exit(2)
	}
	return sessionID
}

func printRecentSessions(out *os.File) {
	recent, err := store.LoadRecentSessions()
	if err != nil || len(recent) == 0 {
		return
	}
	fmt.Fprintln(out, "\nRecent sessions:")
	for _, s := range recent {
		fmt.Fprintf(out, "  %d  %s • %s • %s\n", s.SessionID, s.Film, s.Cinema, s.StartTime.Format("Mon 02 Jan 15:04"))
	}
}

func main() {
	sessionID := handleArgs(os.Args[1:])
	if sessionID == 0 {
		return
	}

	cfg := config.Load()

	profile, err := store.LoadProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not read the saved profile: %v\n", err)
	}

	client := service.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.BaseURL, profile.Token)
	nav := tui.BrowserNavigator{TicketsURL: cfg.TicketsURL, LoginURL: cfg.LoginURL}

	app := tui.New(client, profile, nav, sessionID)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

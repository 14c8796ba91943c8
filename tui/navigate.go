package tui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Routes the checkout can navigate to once it leaves the screen.
const (
	RouteTickets = "tickets"
	RouteLogin   = "login"
)

// Navigator moves the user somewhere outside this screen.
type Navigator interface {
	GoTo(route string) error
}

// BrowserNavigator opens checkout-adjacent pages in the default browser.
type BrowserNavigator struct {
	TicketsURL string
	LoginURL   string
}

func (n BrowserNavigator) GoTo(route string) error {
	var url string
	switch route {
	case RouteTickets:
		url = n.TicketsURL
	case RouteLogin:
		url = n.LoginURL
	default:
		return fmt.Errorf("unknown route: %s", route)
	}
	return openURL(url)
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS for opening browser: %s", runtime.GOOS)
	}
}

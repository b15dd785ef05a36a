package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// BrowserCommand returns the command that opens url on the given OS
func BrowserCommand(goos, url string) (string, []string, bool) {
	switch goos {
	case "linux":
		return "xdg-open", []string{url}, true
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, true
	case "darwin":
		return "open", []string{url}, true
	default:
		return "", nil, false
	}
}

// OpenBrowser opens the specified URL in the user's default browser
func OpenBrowser(url string) error {
	name, args, ok := BrowserCommand(runtime.GOOS, url)
	if !ok {
		return fmt.Errorf("no browser launcher for %s", runtime.GOOS)
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

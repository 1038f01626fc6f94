package oauth

import (
	"os/exec"
	"runtime"
)

// execCommand is a test seam for exec.Command.
var execCommand = exec.Command

// OpenBrowser opens url in the operator's default browser. Callers should
// print the URL as well, for environments where no opener is available.
func OpenBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return execCommand("open", url).Start()
	case "windows":
		return execCommand("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return execCommand("xdg-open", url).Start()
	}
}

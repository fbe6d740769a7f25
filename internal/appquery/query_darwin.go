//go:build darwin

package appquery

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// systemEvents shells out to osascript. System Events only answers for
// processes the user granted accessibility access to, so every call can
// fail even when the target application is running.
type systemEvents struct{}

// New returns the platform Querier.
func New() (Querier, error) {
	if _, err := exec.LookPath("osascript"); err != nil {
		return nil, fmt.Errorf("osascript not available: %w", err)
	}
	return &systemEvents{}, nil
}

func (q *systemEvents) PIDForApp(appPath string) (int, error) {
	script := fmt.Sprintf(
		`tell application "System Events" to get unix id of first application process whose POSIX path of application file is %s`,
		scriptString(strings.TrimSuffix(appPath, "/")),
	)
	out, err := runScript(script)
	if err != nil {
		// Not running shows up as a lookup error, not a failure
		return 0, nil
	}
	pid, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("unexpected pid output %q: %w", out, err)
	}
	return pid, nil
}

func (q *systemEvents) FrontmostPID() (int, error) {
	script := `tell application "System Events" to get unix id of first application process whose frontmost is true`
	out, err := runScript(script)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("unexpected pid output %q: %w", out, err)
	}
	return pid, nil
}

func (q *systemEvents) OpenDocuments(pid int) ([]string, error) {
	script := fmt.Sprintf(`
tell application "System Events"
	set fileList to {}
	repeat with p in processes
		try
			if unix id of p is %d then
				repeat with w in windows of p
					try
						set filePath to value of attribute "AXDocument" of w
						if filePath is not missing value then
							set end of fileList to filePath
						end if
					end try
				end repeat
			end if
		end try
	end repeat
end tell
return fileList`, pid)

	out, err := runScript(script)
	if err != nil {
		return nil, err
	}
	return parseScriptList(out), nil
}

func runScript(script string) (string, error) {
	out, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("osascript: %s", msg)
	}
	return string(out), nil
}

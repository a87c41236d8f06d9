package launch

import (
	"os/exec"
	"strconv"
	"strings"
)

// CommandLine builds argv for req. Elevated links ask for an admin
// password through osascript; NewWindow links open in Terminal.app.
func CommandLine(req Request, _ string) []string {
	if req.Elevated {
		script := "do shell script " + strconv.Quote(shellJoin(req)) + " with administrator privileges"
		return []string{"osascript", "-e", script}
	}
	if req.NewWindow {
		script := `tell application "Terminal" to do script ` + strconv.Quote(shellJoin(req))
		return []string{"osascript", "-e", script}
	}
	return append([]string{req.Command}, req.Args...)
}

func shellJoin(req Request) string {
	parts := []string{shellQuote(req.Command)}
	for _, a := range req.Args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func detach(*exec.Cmd) {}

package launch

import (
	"os/exec"
	"strings"
	"syscall"
)

const createNewProcessGroup = 0x00000200

// CommandLine builds argv for req. Elevated links use Start-Process with
// the RunAs verb to trigger UAC; NewWindow links go through cmd start.
func CommandLine(req Request, _ string) []string {
	if req.Elevated {
		ps := "Start-Process -FilePath " + psQuote(req.Command) + " -Verb RunAs"
		if len(req.Args) > 0 {
			quoted := make([]string, len(req.Args))
			for i, a := range req.Args {
				quoted[i] = psQuote(a)
			}
			ps += " -ArgumentList " + strings.Join(quoted, ",")
		}
		return []string{"powershell", "-NoProfile", "-Command", ps}
	}
	if req.NewWindow {
		return append([]string{"cmd", "/c", "start", "", req.Command}, req.Args...)
	}
	return append([]string{req.Command}, req.Args...)
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNewProcessGroup}
}

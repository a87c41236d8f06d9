package clipboard

import (
	"strings"

	cb "github.com/atotto/clipboard"
)

func Read() (string, error) {
	return cb.ReadAll()
}

func Copy(text string) error {
	return cb.WriteAll(text)
}

// CopyCommand puts a shell-pasteable command line on the clipboard.
func CopyCommand(command string, args []string) error {
	return Copy(CommandLine(command, args))
}

// CommandLine joins command and args, single-quoting any word a POSIX
// shell would split or expand.
func CommandLine(command string, args []string) string {
	words := make([]string, 0, len(args)+1)
	for _, w := range append([]string{command}, args...) {
		words = append(words, quote(w))
	}
	return strings.Join(words, " ")
}

func quote(w string) string {
	if w == "" {
		return "''"
	}
	if !strings.ContainsAny(w, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
		return w
	}
	return "'" + strings.ReplaceAll(w, "'", `'\''`) + "'"
}

package clipboard

import "testing"

func TestCommandLine(t *testing.T) {
	tests := []struct {
		cmd  string
		args []string
		want string
	}{
		{"firefox", nil, "firefox"},
		{"firefox", []string{"--new-window", "https://example.com"}, "firefox --new-window https://example.com"},
		{"/opt/My App/run", []string{"a b"}, "'/opt/My App/run' 'a b'"},
		{"echo", []string{"it's", ""}, `echo 'it'\''s' ''`},
		{"sh", []string{"-c", "ls | wc -l"}, "sh -c 'ls | wc -l'"},
	}
	for _, tt := range tests {
		if got := CommandLine(tt.cmd, tt.args); got != tt.want {
			t.Errorf("CommandLine(%q, %q) = %q, want %q", tt.cmd, tt.args, got, tt.want)
		}
	}
}

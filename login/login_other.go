//go:build !darwin && !linux

package login

func entryPath() string { return "" }

func Enable() error  { return ErrUnsupported }
func Disable() error { return nil }

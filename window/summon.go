package window

import "sync"

// SummonFlag records that the window was asked to come to the front
// and grab search focus. Setting it twice before it is taken is the
// same as setting it once.
type SummonFlag struct {
	mu  sync.Mutex
	set bool
}

func (f *SummonFlag) Set() {
	f.mu.Lock()
	f.set = true
	f.mu.Unlock()
}

// Take reports whether the flag was set and clears it.
func (f *SummonFlag) Take() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	was := f.set
	f.set = false
	return was
}

package hotkey

// FakeListener is a Listener driven by tests.
type FakeListener struct {
	events chan KeyEvent
}

func NewFake() *FakeListener {
	return &FakeListener{
		events: make(chan KeyEvent, 16),
	}
}

func (f *FakeListener) Register() error         { return nil }
func (f *FakeListener) Unregister()             {}
func (f *FakeListener) Events() <-chan KeyEvent { return f.events }

func (f *FakeListener) Sim(ev KeyEvent)  { f.events <- ev }
func (f *FakeListener) SimPress(k Key)   { f.events <- Press(k) }
func (f *FakeListener) SimRelease(k Key) { f.events <- Release(k) }

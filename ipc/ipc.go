// Package ipc lets a second baro process control the running one over a
// unix socket. Each connection carries one newline-terminated message and
// gets a one-line reply.
package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"baro/event"
	"baro/log"
)

const (
	MsgShow       = "show"
	MsgHide       = "hide"
	MsgGestureOn  = "gesture:on"
	MsgGestureOff = "gesture:off"
	MsgQuit       = "quit"
)

const maxMessage = 1024

// ParseMessage maps a wire message to the signal it requests.
func ParseMessage(msg string) (event.Signal, error) {
	switch strings.TrimSpace(msg) {
	case MsgShow:
		return event.Summon("ipc"), nil
	case MsgHide:
		return event.Dismiss(), nil
	case MsgGestureOn:
		return event.ToggleGesture(true, "ipc"), nil
	case MsgGestureOff:
		return event.ToggleGesture(false, "ipc"), nil
	case MsgQuit:
		return event.Quit("ipc"), nil
	}
	return event.Signal{}, fmt.Errorf("unknown message %q", msg)
}

type Server struct {
	path     string
	sink     event.Sender
	listener net.Listener

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

func NewServer(path string, sink event.Sender) *Server {
	return &Server{path: path, sink: sink}
}

func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("IPC server already running")
	}

	// a stale socket from a crashed run blocks Listen
	if _, err := os.Stat(s.path); err == nil {
		os.Remove(s.path)
	}

	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("failed to create socket listener: %w", err)
	}
	s.listener = listener
	s.running = true

	log.Infof("ipc listening on %s", s.path)

	s.wg.Add(1)
	go s.acceptConnections()
	return nil
}

func (s *Server) acceptConnections() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warnf("ipc accept: %v", err)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * time.Second))

	r := bufio.NewReader(&limitedReader{r: conn, n: maxMessage})
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		log.Warnf("ipc read: %v", err)
		return
	}

	fmt.Fprintln(conn, s.handleMessage(strings.TrimSpace(line)))
}

func (s *Server) handleMessage(msg string) string {
	sig, err := ParseMessage(msg)
	if err != nil {
		log.Warnf("ipc: %v", err)
		return "error: " + err.Error()
	}
	if err := s.sink.Send(sig); err != nil {
		log.Warnf("ipc %s: %v", msg, err)
		return "error: " + err.Error()
	}
	return "ok"
}

// Close stops accepting, waits for in-flight connections, and removes
// the socket file.
func (s *Server) Close() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	err := s.listener.Close()
	s.mu.Unlock()

	s.wg.Wait()
	if _, statErr := os.Stat(s.path); statErr == nil {
		os.Remove(s.path)
	}
	return err
}

// Send delivers one message to the server at path and returns its reply.
func Send(path, msg string) error {
	conn, err := net.DialTimeout("unix", path, time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to baro socket: %w", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(3 * time.Second))

	if _, err := fmt.Fprintln(conn, msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("no reply: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply != "ok" {
		return errors.New(strings.TrimPrefix(reply, "error: "))
	}
	return nil
}

type limitedReader struct {
	r net.Conn
	n int
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.n <= 0 {
		return 0, fmt.Errorf("message longer than %d bytes", maxMessage)
	}
	if len(p) > l.n {
		p = p[:l.n]
	}
	n, err := l.r.Read(p)
	l.n -= n
	return n, err
}

package terminal

import (
	"io"
	"sync"
	"time"
)

// StreamBackend adapts an arbitrary reader/writer pair: pipes, files, tests.
// Mode switching is a no-op; reads are pumped by a goroutine so timeouts work on any reader.
type StreamBackend struct {
	r io.Reader
	w io.Writer

	startOnce sync.Once
	chunks    chan streamChunk

	mu       sync.Mutex
	pending  []byte
	err      error
	depth    int
	acquires int
	width    int
	height   int
}

type streamChunk struct {
	data []byte
	err  error
}

// NewStream creates a backend reading r and writing w
func NewStream(r io.Reader, w io.Writer) *StreamBackend {
	return &StreamBackend{
		r:      r,
		w:      w,
		chunks: make(chan streamChunk, 16),
		width:  80,
		height: 24,
	}
}

func (s *StreamBackend) pump() {
	defer close(s.chunks)
	buf := make([]byte, 256)
	for {
		n, err := s.r.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			s.chunks <- streamChunk{data: data}
		}
		if err != nil {
			s.chunks <- streamChunk{err: err}
			return
		}
	}
}

func (s *StreamBackend) start() {
	s.startOnce.Do(func() { go s.pump() })
}

// Acquire only counts; streams have no line discipline
func (s *StreamBackend) Acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.depth++
	if s.depth == 1 {
		s.acquires++
	}
	return nil
}

func (s *StreamBackend) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.depth > 0 {
		s.depth--
	}
	return nil
}

// Acquires returns how many outermost Acquire calls have been made
func (s *StreamBackend) Acquires() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquires
}

// take pops a buffered byte or reports the sticky error
func (s *StreamBackend) take() (byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) > 0 {
		c := s.pending[0]
		s.pending = s.pending[1:]
		return c, true, nil
	}
	return 0, false, s.err
}

func (s *StreamBackend) accept(chunk streamChunk, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !open {
		if s.err == nil {
			s.err = io.EOF
		}
		return
	}
	if chunk.err != nil {
		s.err = chunk.err
		return
	}
	s.pending = append(s.pending, chunk.data...)
}

func (s *StreamBackend) ReadByte() (byte, error) {
	s.start()
	for {
		c, ok, err := s.take()
		if ok {
			return c, nil
		}
		if err != nil {
			return 0, err
		}
		chunk, open := <-s.chunks
		s.accept(chunk, open)
	}
}

func (s *StreamBackend) ReadByteTimeout(d time.Duration) (byte, bool, error) {
	s.start()
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		c, ok, err := s.take()
		if ok {
			return c, true, nil
		}
		if err != nil {
			return 0, false, err
		}
		select {
		case chunk, open := <-s.chunks:
			s.accept(chunk, open)
		case <-timer.C:
			return 0, false, nil
		}
	}
}

func (s *StreamBackend) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *StreamBackend) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// SetSize sets the dimensions reported by Size
func (s *StreamBackend) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

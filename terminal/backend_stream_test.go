package terminal

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

func TestStreamReadsInOrder(t *testing.T) {
	s := NewStream(bytes.NewReader([]byte("ab")), io.Discard)

	for _, want := range []byte("ab") {
		got, err := s.ReadByte()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
	if _, err := s.ReadByte(); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF, got %v", err)
	}
	// Sticky
	if _, err := s.ReadByte(); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF on repeat read, got %v", err)
	}
}

func TestStreamReadTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := NewStream(pr, io.Discard)

	start := time.Now()
	_, ok, err := s.ReadByteTimeout(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok {
		t.Error("Expected timeout with no input")
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("Expected to wait for the full timeout")
	}

	go pw.Write([]byte{'x'})
	b, ok, err := s.ReadByteTimeout(time.Second)
	if err != nil || !ok || b != 'x' {
		t.Errorf("Expected 'x', got %q ok=%v err=%v", b, ok, err)
	}
}

func TestStreamAcquireNesting(t *testing.T) {
	s := NewStream(bytes.NewReader(nil), io.Discard)
	s.Acquire()
	s.Acquire()
	s.Release()
	s.Release()
	s.Acquire()
	s.Release()
	if got := s.Acquires(); got != 2 {
		t.Errorf("Expected 2 outermost acquisitions, got %d", got)
	}
}

func TestStreamWriteAndSize(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(bytes.NewReader(nil), &out)
	s.Write([]byte("hi"))
	if out.String() != "hi" {
		t.Errorf("Expected hi, got %q", out.String())
	}
	s.SetSize(40, 10)
	if w, h := s.Size(); w != 40 || h != 10 {
		t.Errorf("Expected 40x10, got %dx%d", w, h)
	}
	if IsTTY(s) {
		t.Error("Expected stream backend not to be a tty")
	}
}

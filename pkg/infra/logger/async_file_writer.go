package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const flushInterval = 2 * time.Second

// AsyncFileWriter buffers log lines through a channel so request paths
// never block on disk. Lines are dropped when the channel is full.
type AsyncFileWriter struct {
	writer *bufio.Writer
	file   *os.File
	mu     sync.Mutex
	lines  chan []byte
	done   chan struct{}
}

func NewAsyncFileWriter(path string, bufferSize int) (*AsyncFileWriter, error) {
	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	w := &AsyncFileWriter{
		writer: bufio.NewWriterSize(file, bufferSize),
		file:   file,
		lines:  make(chan []byte, 1000),
		done:   make(chan struct{}),
	}

	go w.drain()

	return w, nil
}

func (w *AsyncFileWriter) Write(p []byte) (int, error) {
	select {
	case w.lines <- append([]byte{}, p...):
		return len(p), nil
	default:
		return 0, nil
	}
}

func (w *AsyncFileWriter) drain() {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()
	for {
		select {
		case line := <-w.lines:
			w.mu.Lock()
			if _, err := w.writer.Write(line); err != nil {
				fmt.Println("error writing log line to file", err)
			}
			w.mu.Unlock()

		case <-ticker.C:
			w.mu.Lock()
			_ = w.writer.Flush()
			w.mu.Unlock()

		case <-w.done:
			w.mu.Lock()
			_ = w.writer.Flush()
			w.mu.Unlock()
			return
		}
	}
}

func (w *AsyncFileWriter) Close() {
	close(w.done)
	_ = w.file.Close()
}

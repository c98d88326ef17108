// Package storage reads and writes the todo data file.
//
// The file is a little-endian int32 record count followed by that many
// 272-byte records:
//
//	offset  size  field
//	0       128   text, NUL-terminated
//	128     128   category, NUL-terminated
//	256     8     due date, int64 Unix seconds, 0 when unset
//	264     4     done, int32
//	268     4     padding
//
// The layout is neither versioned nor self-describing.
package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"minitodo/internal/todo"
)

const (
	countSize  = 4
	textOff    = 0
	catOff     = textOff + todo.MaxLength
	dueOff     = catOff + todo.MaxLength
	doneOff    = dueOff + 8
	recordSize = doneOff + 8
)

var ErrCorrupt = errors.New("corrupt todo file")

// Encode writes the count and records for todos.
func Encode(w io.Writer, todos []todo.Todo) error {
	if len(todos) > todo.MaxTodos {
		return fmt.Errorf("%d todos exceeds capacity of %d", len(todos), todo.MaxTodos)
	}
	var count [countSize]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(todos)))
	if _, err := w.Write(count[:]); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	buf := make([]byte, recordSize)
	for i, t := range todos {
		encodeRecord(buf, t)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	return nil
}

// Decode reads a count and that many records. Any short read, or a count
// outside [0, todo.MaxTodos], is reported as ErrCorrupt. Bytes after the
// last record are ignored.
func Decode(r io.Reader) ([]todo.Todo, error) {
	var count [countSize]byte
	if _, err := io.ReadFull(r, count[:]); err != nil {
		return nil, fmt.Errorf("%w: reading count: %v", ErrCorrupt, err)
	}
	n := int32(binary.LittleEndian.Uint32(count[:]))
	if n < 0 || n > todo.MaxTodos {
		return nil, fmt.Errorf("%w: record count %d", ErrCorrupt, n)
	}
	todos := make([]todo.Todo, 0, n)
	buf := make([]byte, recordSize)
	for i := 0; i < int(n); i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: reading record %d of %d: %v", ErrCorrupt, i+1, n, err)
		}
		todos = append(todos, decodeRecord(buf))
	}
	return todos, nil
}

func encodeRecord(buf []byte, t todo.Todo) {
	clear(buf)
	putString(buf[textOff:catOff], t.Text)
	putString(buf[catOff:dueOff], t.Category)
	var due int64
	if !t.Due.IsZero() {
		due = t.Due.Unix()
	}
	binary.LittleEndian.PutUint64(buf[dueOff:], uint64(due))
	if t.Done {
		binary.LittleEndian.PutUint32(buf[doneOff:], 1)
	}
}

func decodeRecord(buf []byte) todo.Todo {
	t := todo.Todo{
		Text:     getString(buf[textOff:catOff]),
		Category: getString(buf[catOff:dueOff]),
		Done:     binary.LittleEndian.Uint32(buf[doneOff:]) != 0,
	}
	if due := int64(binary.LittleEndian.Uint64(buf[dueOff:])); due != 0 {
		t.Due = time.Unix(due, 0)
	}
	return t
}

// putString leaves at least one trailing NUL in dst.
func putString(dst []byte, s string) {
	copy(dst[:len(dst)-1], todo.Truncate(s))
}

func getString(src []byte) string {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		src = src[:i]
	}
	return todo.Truncate(string(src))
}

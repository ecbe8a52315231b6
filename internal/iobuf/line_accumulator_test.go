/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package iobuf

import (
	"reflect"
	"testing"
)

func TestLineAccumulatorSplitsAcrossWrites(t *testing.T) {
	var lines []string
	a := NewLineAccumulator(func(line string) { lines = append(lines, line) })

	a.Write([]byte("hello "))
	a.Write([]byte("world\nsecond li"))
	a.Write([]byte("ne\nthird"))
	a.Flush()

	want := []string{"hello world", "second line", "third"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestLineAccumulatorFlushOnEmptyPendingIsNoop(t *testing.T) {
	var lines []string
	a := NewLineAccumulator(func(line string) { lines = append(lines, line) })
	a.Write([]byte("complete\n"))
	a.Flush()
	if want := []string{"complete"}; !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

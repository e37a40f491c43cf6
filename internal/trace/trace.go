// Package trace parses allocation trace scripts and replays them against an
// allocator.
//
// A trace has one operation per line:
//
//	a <id> <size>   allocate size bytes and name the block id
//	f <id>          free block id
//	r <id> <size>   resize block id to size bytes
//
// Blank lines and lines starting with '#' are ignored.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// CommentPrefix starts a comment line.
	CommentPrefix = "#"

	scannerMaxLineSize = 64 * 1024
)

// ErrSyntax indicates a malformed trace line.
var ErrSyntax = errors.New("trace: syntax error")

// Kind is the operation type.
type Kind byte

const (
	KindAlloc   Kind = 'a'
	KindFree    Kind = 'f'
	KindRealloc Kind = 'r'
)

func (k Kind) String() string {
	switch k {
	case KindAlloc:
		return "alloc"
	case KindFree:
		return "free"
	case KindRealloc:
		return "realloc"
	default:
		return fmt.Sprintf("kind(%q)", byte(k))
	}
}

// Op is one trace operation.
type Op struct {
	Kind Kind
	ID   string
	Size int // unused for KindFree
	Line int
}

func (op Op) String() string {
	if op.Kind == KindFree {
		return fmt.Sprintf("%c %s", op.Kind, op.ID)
	}
	return fmt.Sprintf("%c %s %d", op.Kind, op.ID, op.Size)
}

// ParseError reports the line a syntax error was found on.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace: line %d: %s: %q", e.Line, e.Msg, e.Text)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

// Parse reads every operation from r.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), scannerMaxLineSize)

	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		op, err := parseLine(line, n)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: read failed: %w", err)
	}
	return ops, nil
}

func parseLine(line string, n int) (Op, error) {
	fields := strings.Fields(line)
	fail := func(msg string) (Op, error) {
		return Op{}, &ParseError{Line: n, Text: line, Msg: msg}
	}

	if len(fields[0]) != 1 {
		return fail("unknown operation")
	}
	op := Op{Kind: Kind(fields[0][0]), Line: n}

	switch op.Kind {
	case KindFree:
		if len(fields) != 2 {
			return fail("free takes one argument")
		}
		op.ID = fields[1]
		return op, nil

	case KindAlloc, KindRealloc:
		if len(fields) != 3 {
			return fail(op.Kind.String() + " takes two arguments")
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil || size < 0 {
			return fail("size must be a non-negative integer")
		}
		op.ID = fields[1]
		op.Size = size
		return op, nil

	default:
		return fail("unknown operation")
	}
}

// Package catalog reads the ASCII target list (§4.J, §6).
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pfsfiber/internal/geom"
	"pfsfiber/internal/target"
)

// Read parses the target catalog at path. Each non-comment, non-blank
// line is "ID<int> x y time pri", whitespace-separated; lines are
// trimmed of '\r' and of anything from '#' onward. Malformed lines are
// warned about and skipped, except an id that fails to begin with the
// literal "ID", which is fatal (§7 parse errors).
func Read(path string) ([]target.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return read(f, path)
}

func read(r io.Reader, path string) ([]target.Target, error) {
	var out []target.Target
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		line = strings.TrimRight(line, "\r")
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 5 {
			warnf("catalog: %s:%d: expected 5 fields, got %d, skipping", path, lineNo, len(fields))
			continue
		}
		t, err := parseRecord(fields)
		if err != nil {
			if err == errBadID {
				return nil, fmt.Errorf("catalog: %s:%d: %w", path, lineNo, err)
			}
			warnf("catalog: %s:%d: %v, skipping", path, lineNo, err)
			continue
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return out, nil
}

var errBadID = fmt.Errorf(`catalog: target id must begin with "ID"`)

func parseRecord(fields []string) (target.Target, error) {
	idField := fields[0]
	if !strings.HasPrefix(idField, "ID") {
		return target.Target{}, errBadID
	}
	id, err := strconv.Atoi(idField[2:])
	if err != nil {
		return target.Target{}, errBadID
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return target.Target{}, fmt.Errorf("bad x %q: %w", fields[1], err)
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return target.Target{}, fmt.Errorf("bad y %q: %w", fields[2], err)
	}
	tm, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return target.Target{}, fmt.Errorf("bad time %q: %w", fields[3], err)
	}
	pri, err := strconv.Atoi(fields[4])
	if err != nil {
		return target.Target{}, fmt.Errorf("bad pri %q: %w", fields[4], err)
	}
	return target.Target{ID: id, Pos: geom.New(x, y), Time: tm, Pri: pri}, nil
}

// warnf reports a recoverable per-line parse problem to standard error,
// matching the teacher's ReadOcd convention of skipping malformed lines
// with a warning rather than aborting the whole file.
func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

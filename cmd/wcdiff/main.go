// Package main implements wcdiff, a row-level diff for cleaned match
// exports. It prints every line of -other that does not appear in -base,
// which is the quick way to check that a regenerated clean set matches a
// previously published one (and to see exactly which rows moved when it
// does not).
//
// The base file is indexed as a set of xxh3 line hashes; the other file is
// scanned in parallel over newline-aligned byte ranges. The header line of
// -other is always emitted first so the output stays a loadable CSV.
//
// wcdiff is a reporting tool: it exits 0 even when differences exist, and
// nonzero only on I/O failure.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

const (
	// Reader buffer while indexing the base file.
	readBufSize = 1 << 20 // 1 MiB

	// Generous per-line cap; cleaned match rows are a few hundred bytes.
	maxLineSize = 1 << 20

	// Minimum byte range per worker. Cleaned exports are small, so modest
	// blocks keep every worker busy without oversplitting.
	defaultBlkSize = 1 << 20 // 1 MiB
)

// fileRange is a half-open byte interval [start, end) within the other file.
type fileRange struct{ start, end int64 }

// hashLine strips a trailing '\r' (CRLF exports) and hashes the line.
// The stripped form is also what gets printed, so LF and CRLF copies of the
// same data compare equal.
func hashLine(line []byte) (uint64, []byte) {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return xxh3.Hash(line), line
}

// buildIndex reads the base file once and returns the set of its line hashes.
// Empty lines carry no row data and are not indexed.
func buildIndex(path string) (map[uint64]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Best-effort kernel hint: one large sequential pass.
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)

	idx := make(map[uint64]struct{})
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, readBufSize), maxLineSize)
	for sc.Scan() {
		h, line := hashLine(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		idx[h] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("index %s: %w", path, err)
	}
	return idx, nil
}

// splitRanges divides [0, size) into roughly equal byte ranges of at least
// minBlk bytes each. Returns nil for an empty file.
func splitRanges(size int64, parts int, minBlk int64) []fileRange {
	if size == 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	chunk := size / int64(parts)
	if chunk < minBlk {
		chunk = minBlk
	}

	var ranges []fileRange
	for off := int64(0); off < size; off += chunk {
		end := off + chunk
		if end > size {
			end = size
		}
		ranges = append(ranges, fileRange{start: off, end: end})
	}
	return ranges
}

// nextNewline returns the offset just past the first '\n' at or after off,
// or size when the remainder holds none.
func nextNewline(r io.ReaderAt, size, off int64) (int64, error) {
	buf := make([]byte, 32<<10)
	for off < size {
		n, err := r.ReadAt(buf, off)
		for i := 0; i < n; i++ {
			if buf[i] == '\n' {
				return off + int64(i) + 1, nil
			}
		}
		off += int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return size, nil
}

// scanRange collects the lines of rg that are not in idx.
//
// Both boundaries are aligned forward to the next newline, so consecutive
// raw ranges tile the file exactly: a line spanning a raw boundary belongs
// to the earlier range, and the file's first line (the header) belongs to no
// range at all. The caller emits the header itself.
func scanRange(r io.ReaderAt, size int64, rg fileRange, idx map[uint64]struct{}) ([]byte, error) {
	start, err := nextNewline(r, size, rg.start)
	if err != nil {
		return nil, err
	}
	end := rg.end
	if end < size {
		if end, err = nextNewline(r, size, rg.end); err != nil {
			return nil, err
		}
	}
	if start >= end {
		return nil, nil
	}

	var out []byte
	sc := bufio.NewScanner(io.NewSectionReader(r, start, end-start))
	sc.Buffer(make([]byte, 64<<10), maxLineSize)
	for sc.Scan() {
		h, line := hashLine(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if _, ok := idx[h]; !ok {
			out = append(out, line...)
			out = append(out, '\n')
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// readHeader returns the first line of the file, newline included when
// present. An empty file yields an empty header.
func readHeader(r io.ReaderAt, size int64) ([]byte, error) {
	end, err := nextNewline(r, size, 0)
	if err != nil {
		return nil, err
	}
	header := make([]byte, end)
	if _, err := r.ReadAt(header, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return header, nil
}

// diffFiles writes the header of otherPath plus every line of otherPath
// missing from basePath to w, preserving the other file's line order.
func diffFiles(basePath, otherPath string, workers int, minBlk int64, w io.Writer) error {
	if workers < 1 {
		workers = 1
	}

	idx, err := buildIndex(basePath)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	f, err := os.Open(otherPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", otherPath, err)
	}
	size := st.Size()

	header, err := readHeader(f, size)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	ranges := splitRanges(size, workers, minBlk)
	outs := make([][]byte, len(ranges))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, rg := range ranges {
		g.Go(func() error {
			out, err := scanRange(f, size, rg, idx)
			outs[i] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("scan %s: %w", otherPath, err)
	}

	bw := bufio.NewWriterSize(w, readBufSize)
	if _, err := bw.Write(header); err != nil {
		return err
	}
	for _, out := range outs {
		if _, err := bw.Write(out); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func main() {
	base := flag.String("base", "", "baseline cleaned export; its rows are never printed")
	other := flag.String("other", "", "candidate cleaned export; rows missing from -base are printed")
	workers := flag.Int("workers", runtime.NumCPU(), "number of parallel range scanners")
	blockSize := flag.Int("block", defaultBlkSize, "minimum byte range per scanner")
	flag.Parse()

	if *base == "" || *other == "" {
		fmt.Fprintln(os.Stderr, "both -base and -other are required")
		flag.Usage()
		os.Exit(1)
	}

	if err := diffFiles(*base, *other, *workers, int64(*blockSize), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "wcdiff: %v\n", err)
		os.Exit(1)
	}
}

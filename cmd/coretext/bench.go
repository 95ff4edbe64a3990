package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/quillbuf/coretext/buffer"
	"github.com/quillbuf/coretext/model"
)

var (
	benchLines int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Stress-test the text model and report throughput",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchLines, "lines", 50_000, "number of lines in the generated test document")
}

// benchResult mirrors a single reported row: name, elapsed time, and op
// count.
type benchResult struct {
	Name     string
	Duration time.Duration
	Ops      int
}

func (r benchResult) String() string {
	if r.Ops == 0 {
		return fmt.Sprintf("%-32s %10v", r.Name, r.Duration.Round(time.Millisecond))
	}
	opsPerSec := float64(r.Ops) / r.Duration.Seconds()
	return fmt.Sprintf("%-32s %10v  (%s ops, %s ops/sec)",
		r.Name, r.Duration.Round(time.Millisecond), humanize.Comma(int64(r.Ops)), humanize.Comma(int64(opsPerSec)))
}

func generateText(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&b, "line %06d: the quick brown fox jumps over the lazy dog\n", i)
	}
	return b.String()
}

func runBench(cmd *cobra.Command, args []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	text := generateText(benchLines)
	fmt.Printf("coretext bench: %s lines, %s\n\n", humanize.Comma(int64(benchLines)), humanize.Bytes(uint64(len(text))))

	tm := model.New(text, buildModelOptions(logger))
	defer tm.Dispose()

	var results []benchResult
	run := func(name string, fn func() int) {
		start := time.Now()
		ops := fn()
		results = append(results, benchResult{Name: name, Duration: time.Since(start), Ops: ops})
	}

	run("sequential inserts", func() int {
		ops := 0
		for i := 0; i < 1000; i++ {
			pos := buffer.Position{Line: 1, Column: 1}
			if _, err := tm.ApplyEdits([]buffer.TextEdit{{Range: buffer.Range{Start: pos, End: pos}, Text: "x"}}); err == nil {
				ops++
			}
		}
		return ops
	})

	run("undo/redo cycles", func() int {
		ops := 0
		for i := 0; i < 500; i++ {
			if _, ok, err := tm.Undo(); err == nil && ok {
				ops++
			}
		}
		for i := 0; i < 500; i++ {
			if _, ok, err := tm.Redo(); err == nil && ok {
				ops++
			}
		}
		return ops
	})

	run("find matches", func() int {
		ops := 0
		lineCount, _ := tm.GetLineCount()
		lastCol, _ := tm.GetLineMaxColumn(lineCount)
		whole := buffer.Range{Start: buffer.Position{Line: 1, Column: 1}, End: buffer.Position{Line: lineCount, Column: lastCol}}
		matches, err := tm.FindMatches("fox", whole, false, false, false, 10_000)
		if err == nil {
			ops = len(matches)
		}
		return ops
	})

	run("decoration add/query/remove", func() int {
		ops := 0
		ids, err := tm.DeltaDecorations("bench", nil, benchRanges(benchLines), nil)
		if err == nil {
			ops += len(ids)
		}
		if _, err := tm.GetAllDecorations("bench", false); err == nil {
			ops += len(ids)
		}
		if err := tm.RemoveAllDecorationsWithOwnerId("bench"); err == nil {
			ops += len(ids)
		}
		return ops
	})

	run("tokenize whole document", func() int {
		lineCount, _ := tm.GetLineCount()
		if err := tm.ForceTokenization(lineCount); err != nil {
			return 0
		}
		return lineCount
	})

	fmt.Println("results:")
	for _, r := range results {
		fmt.Println("  " + r.String())
	}

	snap := tm.DebugSnapshot()
	fmt.Printf("\nfinal state: version=%d lines=%d longest-line=%d undo-depth=%d\n",
		snap.VersionID, snap.LineCount, snap.LongestLineLength, snap.UndoDepth)
	return nil
}

func benchRanges(lines int) []buffer.Range {
	n := lines
	if n > 1000 {
		n = 1000
	}
	ranges := make([]buffer.Range, 0, n)
	for i := 1; i <= n; i++ {
		pos := buffer.Position{Line: i, Column: 1}
		ranges = append(ranges, buffer.Range{Start: pos, End: pos})
	}
	return ranges
}

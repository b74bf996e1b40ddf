package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"lapse/internal/importer"
	"lapse/internal/sequence"
)

// promptSelector asks about each sequence on out and reads single-letter
// answers from in: y(es), n(o), a(ll), q(uit). Anything else re-prompts.
type promptSelector struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptSelector(in io.Reader, out io.Writer) *promptSelector {
	return &promptSelector{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *promptSelector) Decide(seq sequence.Sequence, alreadyImported bool) (importer.Decision, error) {
	start, end := seq.Bounds()
	fmt.Fprintf(p.out, "\nSequence %d  %s\n", seq.Index, seq.SourceDir())
	fmt.Fprintf(p.out, "  %s images, %s, %s to %s (%s)\n",
		formatCount(seq.Count()), formatBytes(seq.TotalBytes()),
		formatTimestamp(start), formatTimestamp(end), formatSpan(start, end))
	if alreadyImported {
		fmt.Fprintln(p.out, "  already imported previously")
	}

	for {
		fmt.Fprint(p.out, "Import this sequence? [y/n/a/q] ")
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return importer.DecisionQuit, nil
			}
			return importer.DecisionNo, fmt.Errorf("read answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return importer.DecisionYes, nil
		case "n", "no":
			return importer.DecisionNo, nil
		case "a", "all":
			return importer.DecisionAll, nil
		case "q", "quit":
			return importer.DecisionQuit, nil
		}
		fmt.Fprintln(p.out, "Please answer y, n, a, or q.")
	}
}

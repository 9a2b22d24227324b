// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// Outcome is the result class of a suite case.
type Outcome string

const (
	Passed  Outcome = "pass"
	Failed  Outcome = "fail"
	Errored Outcome = "error"
	Skipped Outcome = "skip"
)

// Suite accumulates case outcomes. It is safe for concurrent use.
type Suite struct {
	mu      sync.Mutex
	counts  map[Outcome]int
	elapsed time.Duration
	slowest string
	slowDur time.Duration
}

// Record adds one finished case.
func (s *Suite) Record(name string, o Outcome, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counts == nil {
		s.counts = make(map[Outcome]int)
	}
	s.counts[o]++
	s.elapsed += d
	if d > s.slowDur {
		s.slowDur = d
		s.slowest = name
	}
}

// Count returns how many cases ended with o.
func (s *Suite) Count(o Outcome) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[o]
}

// Total returns the number of recorded cases.
func (s *Suite) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.counts {
		n += c
	}
	return n
}

// OK reports whether every recorded case passed or was skipped.
func (s *Suite) OK() bool {
	return s.Count(Failed) == 0 && s.Count(Errored) == 0
}

// Write renders the summary line, e.g.
// "12 cases: 10 passed, 1 failed, 1 errored in 35.2 ms (slowest: big 20 ms)".
func (s *Suite) Write(w io.Writer) error {
	total := s.Total()

	s.mu.Lock()
	defer s.mu.Unlock()

	line := fmt.Sprintf("%s %s: %s passed, %s failed, %s errored",
		humanize.Comma(int64(total)), plural(total, "case", "cases"),
		humanize.Comma(int64(s.counts[Passed])),
		humanize.Comma(int64(s.counts[Failed])),
		humanize.Comma(int64(s.counts[Errored])))
	if n := s.counts[Skipped]; n > 0 {
		line += fmt.Sprintf(", %s skipped", humanize.Comma(int64(n)))
	}
	line += " in " + Duration(s.elapsed)
	if s.slowest != "" && total > 1 {
		line += fmt.Sprintf(" (slowest: %s %s)", s.slowest, Duration(s.slowDur))
	}

	_, err := fmt.Fprintln(w, line)
	return err
}

// Duration renders d with an SI prefix, e.g. "1.5 ms".
func Duration(d time.Duration) string {
	if d <= 0 {
		return "0 s"
	}
	return humanize.SIWithDigits(d.Seconds(), 1, "s")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

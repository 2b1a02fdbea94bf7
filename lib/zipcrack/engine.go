// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package zipcrack

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/salvor-project/salvor/lib/checksum"
	"github.com/salvor-project/salvor/lib/progress"
)

// Engine enumerates every string of exactly Length bytes drawn from
// Alphabet and tests each one against the index. One worker explores
// each first character; the only shared mutable state is the buckets,
// each behind its own lock. Distinct strings can share a checksum, so
// the search never stops early: every worker runs its partition to
// completion and every colliding candidate is recorded.
type Engine struct {
	Index    *Index
	Alphabet Alphabet
	Length   int
	Progress *progress.Counter
}

// Search runs the full enumeration and returns once every worker has
// finished. An empty alphabet has nothing to enumerate and returns
// immediately. The candidate space is |Alphabet|^Length, which bounds
// practical use to short lengths and small alphabets.
func (engine *Engine) Search() {
	var waitGroup sync.WaitGroup
	for _, first := range engine.Alphabet {
		waitGroup.Add(1)
		go func(first byte) {
			defer waitGroup.Done()
			engine.explore(first)
		}(first)
	}
	waitGroup.Wait()
}

// explore walks the worker's partition: every candidate whose first
// byte is first, in alphabet order. The cursor stack stands in for
// recursion; cursors[i] is the alphabet position currently occupying
// prefix position i+1. Length zero degenerates to a single empty
// candidate per worker.
func (engine *Engine) explore(first byte) {
	if engine.Length == 0 {
		engine.test(nil)
		return
	}
	prefix := make([]byte, 1, engine.Length)
	prefix[0] = first
	cursors := make([]int, 0, engine.Length-1)
	for {
		if len(prefix) == engine.Length {
			engine.test(prefix)
		} else {
			cursors = append(cursors, 0)
			prefix = append(prefix, engine.Alphabet[0])
			continue
		}
		for {
			if len(cursors) == 0 {
				return
			}
			depth := len(cursors) - 1
			cursors[depth]++
			if cursors[depth] < len(engine.Alphabet) {
				prefix[len(prefix)-1] = engine.Alphabet[cursors[depth]]
				break
			}
			cursors = cursors[:depth]
			prefix = prefix[:len(prefix)-1]
		}
	}
}

func (engine *Engine) test(candidate []byte) {
	engine.Progress.Add(1)
	bucket, ok := engine.Index.Lookup(checksum.Sum(candidate))
	if !ok {
		return
	}
	bucket.append(candidate)
}

// SearchLines tests candidates from a wordlist stream instead of
// enumerating an alphabet. Lines whose byte length differs from the
// index size cannot be preimages and are skipped; the rest are tested
// in order. The stream is always consumed to the end.
func SearchLines(index *Index, reader io.Reader, counter *progress.Counter) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if uint64(len(line)) != index.Size {
			continue
		}
		counter.Add(1)
		if bucket, ok := index.Lookup(checksum.Sum(line)); ok {
			bucket.append(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading wordlist: %w", err)
	}
	return nil
}

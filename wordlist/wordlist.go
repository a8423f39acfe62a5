// Copyright 2017 Jeff Foley. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package wordlist reads the dictionary files used to drive every
// enumeration mode into ordered, in-memory sequences of entries.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the file at path and returns its accepted entries in file
// order. An entry is accepted iff it is non-empty after trimming the
// trailing newline and does not start with '#' or a space.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist %s: %w", path, err)
	}
	defer f.Close()

	return getWordList(f), nil
}

// LoadAll reads every path in paths, in order, failing fast on the first
// missing file.
func LoadAll(paths []string) ([][]string, error) {
	lists := make([][]string, len(paths))

	for i, p := range paths {
		list, err := Load(p)
		if err != nil {
			return nil, err
		}
		lists[i] = list
	}

	return lists, nil
}

func getWordList(reader io.Reader) []string {
	var words []string

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, " ") {
			continue
		}

		words = append(words, line)
	}

	return words
}

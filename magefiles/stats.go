//go:build mage

package main

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/jedib0t/go-pretty/v6/table"
)

// docFiles are the markdown documents counted by Stats.
var docFiles = []string{"README.md", "DESIGN.md", "SPEC_FULL.md"}

// Stats prints Go lines of code per package and documentation word counts.
func Stats() error {
	type counts struct{ prod, test int }
	perPkg := map[string]*counts{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			name := info.Name()
			if path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || path == binaryDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		n, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		pkg := filepath.Dir(path)
		c, ok := perPkg[pkg]
		if !ok {
			c = &counts{}
			perPkg[pkg] = c
		}
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	pkgs := make([]string, 0, len(perPkg))
	for pkg := range perPkg {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Package", "Prod", "Test"})
	var prod, test int
	for _, pkg := range pkgs {
		c := perPkg[pkg]
		prod += c.prod
		test += c.test
		tw.AppendRow(table.Row{pkg, c.prod, c.test})
	}
	tw.AppendFooter(table.Row{"total", prod, test})
	for _, doc := range docFiles {
		words, err := countWordsInFile(doc)
		if err != nil {
			continue
		}
		tw.AppendFooter(table.Row{doc + " (words)", words, ""})
	}
	tw.Render()
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}

func countWordsInFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	count := 0
	inWord := false
	for _, r := range string(data) {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			count++
		}
	}
	return count, nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/psychcourse/internal/pkg/slides"
)

// errLintFailed signals that at least one deck did not pass validation
var errLintFailed = errors.New("one or more decks failed validation")

func newDecksCmd() *cobra.Command {
	decks := &cobra.Command{
		Use:   "decks",
		Short: "Inspect and validate slide decks",
	}

	decks.AddCommand(&cobra.Command{
		Use:   "lint [file...]",
		Short: "Validate slide deck JSON files",
		Long: `Parses each deck file and checks every slide against its layout's
required fields. Without arguments the built-in decks are checked.`,
		RunE: runDecksLint,
	})

	decks.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the built-in deck slugs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := slides.LoadBuiltin()
			if err != nil {
				return err
			}
			for _, slug := range registry.Slugs() {
				deck, _ := registry.Get(slug)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d slides\n", slug, deck.Len())
			}
			return nil
		},
	})

	return decks
}

func runDecksLint(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := false

	if len(args) == 0 {
		fsys := slides.BuiltinFS()
		entries, err := fs.ReadDir(fsys, "decks")
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			raw, err := fs.ReadFile(fsys, path.Join("decks", entry.Name()))
			if err != nil {
				return err
			}
			if !lintDeck(out, "builtin:"+entry.Name(), raw) {
				failed = true
			}
		}
	}

	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("bad pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, file := range matches {
			raw, err := os.ReadFile(file)
			if err != nil {
				fmt.Fprintf(out, "FAIL %s: %v\n", file, err)
				failed = true
				continue
			}
			if !lintDeck(out, file, raw) {
				failed = true
			}
		}
	}

	if failed {
		return errLintFailed
	}
	return nil
}

// lintDeck reports one deck and returns whether it passed
func lintDeck(out io.Writer, name string, raw []byte) bool {
	deck, err := slides.ParseDeck(raw)
	if err != nil {
		fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
		return false
	}

	if err := slides.Validate(deck); err != nil {
		problems := slides.SlideErrors(err)
		if len(problems) == 0 {
			fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
			return false
		}
		fmt.Fprintf(out, "FAIL %s\n", name)
		for _, p := range problems {
			fmt.Fprintf(out, "  %s\n", p.Error())
		}
		return false
	}

	fmt.Fprintf(out, "ok   %s (%d slides)\n", name, deck.Len())
	return true
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/I-Am-Dench/filetimes/snapshot"
)

func doScan(args []string) {
	flagset := flag.NewFlagSet("scan", flag.ExitOnError)
	flagset.BoolVar(&VerboseFlag, "v", false, "Verbose mode.")
	portable := flagset.Bool("portable", false, "Use the portable millisecond strategy.")
	configPath := flagset.String("config", "", "Path to a yaml scan config.")
	root := flagset.String("root", ".", "Root directory to scan.")

	var patterns arrayFlags
	flagset.Var(&patterns, "pattern", "Doublestar pattern selecting files to record. May be repeated.")
	flagset.Parse(args)

	out := GetArgFilename(flagset, 0, "no snapshot file provided")

	config := DefaultScanConfig()
	if *configPath != "" {
		loaded, err := LoadScanConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		config = loaded
	}

	if *root != "." {
		config.Root = *root
	}
	if len(patterns) > 0 {
		config.Patterns = patterns
	}
	if len(config.Patterns) == 0 {
		config.Patterns = []string{"**"}
	}

	t := SelectTimes(*portable)
	s := &snapshot.Snapshot{}

	err := filepath.WalkDir(config.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(config.Root, path)
		if err != nil {
			return err
		}

		if !config.Matches(filepath.ToSlash(rel)) {
			return nil
		}

		entry, err := snapshot.Scan(t, config.Root, rel)
		if err != nil {
			return err
		}

		s.Put(entry)
		Verbose.Printf("%s: %d.%09d", entry.Path(), entry.ModTime().Sec, entry.ModTime().Nsec)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := snapshot.WriteFile(out, s); err != nil {
		log.Fatal(err)
	}

	Info.Printf("recorded %d files", s.Len())
}

func doCheck(args []string) {
	flagset := flag.NewFlagSet("check", flag.ExitOnError)
	flagset.BoolVar(&VerboseFlag, "v", false, "Verbose mode.")
	portable := flagset.Bool("portable", false, "Use the portable millisecond strategy.")
	root := flagset.String("root", ".", "Root directory the snapshot was taken from.")
	strong := flagset.Bool("strong", false, "Also verify content checksums.")
	flagset.Parse(args)

	path := GetArgFilename(flagset, 0, "no snapshot file provided")

	s, err := snapshot.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Fatalf("file does not exist: %s", path)
	}
	if err != nil {
		log.Fatal(err)
	}

	t := SelectTimes(*portable)

	mismatches := 0
	s.ForEach(func(e *snapshot.Entry) bool {
		if err := e.Check(t, *root); err != nil {
			log.Printf("%s: %v", e.Path(), err)
			mismatches++
			return true
		}

		if *strong {
			if err := e.Verify(*root); err != nil {
				log.Printf("%s: %v", e.Path(), err)
				mismatches++
				return true
			}
		}

		if VerboseFlag {
			fmt.Printf("filetimes: %s: entry matches!\n", e.Path())
		}
		return true
	})

	if mismatches > 0 {
		Error.Fatalf("%d of %d entries do not match", mismatches, s.Len())
	}
	Info.Printf("%d entries match", s.Len())
}

package main

import (
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/I-Am-Dench/filetimes/snapshot"
	"github.com/I-Am-Dench/filetimes/times"
)

const snapshotSchema = `CREATE TABLE IF NOT EXISTS snapshot (
	path TEXT NOT NULL PRIMARY KEY,
	seconds INTEGER NOT NULL,
	nanoseconds INTEGER NOT NULL,
	size INTEGER NOT NULL,
	checksum INTEGER NOT NULL
)`

func openSnapshotDb(name string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", name)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(snapshotSchema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func saveSnapshot(db *sql.DB, s *snapshot.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO snapshot (path, seconds, nanoseconds, size, checksum) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	var execErr error
	s.ForEach(func(e *snapshot.Entry) bool {
		mod := e.ModTime()
		_, execErr = stmt.Exec(e.Path(), mod.Sec, mod.Nsec, e.Size(), int64(e.Checksum()))
		return execErr == nil
	})

	if execErr != nil {
		tx.Rollback()
		return execErr
	}

	return tx.Commit()
}

func loadSnapshot(db *sql.DB) (*snapshot.Snapshot, error) {
	rows, err := db.Query("SELECT path, seconds, nanoseconds, size, checksum FROM snapshot")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s := &snapshot.Snapshot{}
	for rows.Next() {
		var (
			path                                 string
			seconds, nanoseconds, size, checksum int64
		)
		if err := rows.Scan(&path, &seconds, &nanoseconds, &size, &checksum); err != nil {
			return nil, err
		}

		s.Put(snapshot.NewEntry(path, times.NativeTime{Sec: seconds, Nsec: nanoseconds}, size, uint32(checksum)))
	}

	return s, rows.Err()
}

func diffSnapshots(stored, current *snapshot.Snapshot) (differences int) {
	current.ForEach(func(e *snapshot.Entry) bool {
		old, ok := stored.Get(e.Path())
		switch {
		case !ok:
			Info.Printf("%s: added", e.Path())
			differences++
		case old.ModTime() != e.ModTime() || old.Size() != e.Size() || old.Checksum() != e.Checksum():
			Info.Printf("%s: changed", e.Path())
			differences++
		}
		return true
	})

	stored.ForEach(func(e *snapshot.Entry) bool {
		if _, ok := current.Get(e.Path()); !ok {
			Info.Printf("%s: removed", e.Path())
			differences++
		}
		return true
	})

	return differences
}

func doSnapshot(args []string) {
	flagset := flag.NewFlagSet("snapshot", flag.ExitOnError)
	dbPath := flagset.String("db", "snapshot.db", "Path to the sqlite snapshot store.")
	flagset.Parse(args)

	if flagset.NArg() < 2 {
		log.Fatal("expected action and snapshot file: {save|load|diff} <snapshot.txt>")
	}

	action := flagset.Args()[0]
	path := flagset.Args()[1]

	db, err := openSnapshotDb(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	switch action {
	case "save":
		s, err := snapshot.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			log.Fatalf("file does not exist: %s", path)
		}
		if err != nil {
			log.Fatal(err)
		}

		if err := saveSnapshot(db, s); err != nil {
			log.Fatal(err)
		}
		Info.Printf("stored %d entries", s.Len())

	case "load":
		s, err := loadSnapshot(db)
		if err != nil {
			log.Fatal(err)
		}

		if err := snapshot.WriteFile(path, s); err != nil {
			log.Fatal(err)
		}
		Info.Printf("wrote %d entries", s.Len())

	case "diff":
		s, err := snapshot.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}

		stored, err := loadSnapshot(db)
		if err != nil {
			log.Fatal(err)
		}

		if n := diffSnapshots(stored, s); n > 0 {
			Error.Fatalf("%d differences", n)
		}
		Info.Println("snapshots match")

	default:
		log.Fatalf("unknown action: %s", action)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/I-Am-Dench/filetimes/times"
)

func doGet(args []string) {
	flagset := flag.NewFlagSet("get", flag.ExitOnError)
	portable := flagset.Bool("portable", false, "Use the portable millisecond strategy.")
	flagset.Parse(args)

	path := GetArgFilename(flagset, 0)
	t := SelectTimes(*portable)

	native, err := t.NativeModTime(path)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d ms (%d.%09d)\n", times.NativeToMillis(native), native.Sec, native.Nsec)
}

func doSet(args []string) {
	flagset := flag.NewFlagSet("set", flag.ExitOnError)
	portable := flagset.Bool("portable", false, "Use the portable millisecond strategy.")
	ms := flagset.Int64("ms", 0, "Modification time as milliseconds since the Unix epoch.")
	from := flagset.String("from", "", "Copy the modification time from this file instead of -ms.")
	flagset.Parse(args)

	path := GetArgFilename(flagset, 0)
	t := SelectTimes(*portable)

	if *from != "" {
		if err := t.CopyModTime(*from, path); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := t.SetModTime(path, times.Timestamp(*ms)); err != nil {
		log.Fatal(err)
	}
}

func doCopy(args []string) {
	flagset := flag.NewFlagSet("copy", flag.ExitOnError)
	portable := flagset.Bool("portable", false, "Use the portable millisecond strategy.")
	flagset.Parse(args)

	from := GetArgFilename(flagset, 0, "no source file provided")
	to := GetArgFilename(flagset, 1, "no destination file provided")

	if err := SelectTimes(*portable).CopyModTime(from, to); err != nil {
		log.Fatal(err)
	}
}

func doDiagnose(args []string) {
	flagset := flag.NewFlagSet("diagnose", flag.ExitOnError)
	flagset.BoolVar(&VerboseFlag, "v", false, "Verbose mode.")
	portable := flagset.Bool("portable", false, "Use the portable millisecond strategy.")
	flagset.Parse(args)

	dir := "."
	if flagset.NArg() > 0 {
		dir = flagset.Args()[0]
	}

	t := SelectTimes(*portable)

	strategy := "portable"
	if t.Native() {
		strategy = "native"
	}
	Verbose.Printf("strategy: %s", strategy)

	message, err := t.DiagnoseResolution(dir)
	if err != nil {
		log.Fatal(err)
	}

	if message != "" {
		Error.Fatal(message)
	}
	Info.Println("sub-second resolution confirmed")
}

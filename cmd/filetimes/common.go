package main

import (
	"flag"
	"log"
	"strings"

	"github.com/I-Am-Dench/filetimes/times"
)

type CommandList map[string]func(args []string)

func (list *CommandList) Usage() {
	keys := []string{}
	for key := range *list {
		keys = append(keys, key)
	}

	log.Fatalf("expected subcommand: {%s}", strings.Join(keys, "|"))
}

func GetArgFilename(flagset *flag.FlagSet, i int, message ...string) string {
	m := "no filename provided"
	if len(message) > 0 {
		m = message[0]
	}

	if flagset.NArg() < i+1 {
		log.Fatal(m)
	}

	return flagset.Args()[i]
}

func SelectTimes(portable bool) *times.Times {
	if portable {
		return times.Select(times.WithPortable())
	}
	return times.Select()
}

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (i *arrayFlags) String() string {
	return strings.Join(*i, ",")
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

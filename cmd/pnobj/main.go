// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program pnobj inspects and reformats panel object documents.
//
// Usage:
//
//	pnobj [-v] [-comments] check FILE
//	pnobj [-v] [-comments] fmt [-indent] [-jwcc] FILE
//	pnobj [-v] [-comments] deps FILE SEQUENCE
//	pnobj [-v] [-comments] list FILE
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/creachadair/pnobj"
	"github.com/creachadair/pnobj/decode"
	"github.com/creachadair/pnobj/encode"
	"github.com/tailscale/hujson"
)

var (
	verbose  = flag.Bool("v", false, "Log decoder warnings")
	comments = flag.Bool("comments", false, "Allow comments and trailing commas in the input")
	maxBytes = flag.Int("max-bytes", decode.DefaultMaxBytes, "Limit on the size of any byte array in the input")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %[1]s [options] <command> ...

Commands:
  check FILE          decode and validate FILE, print record counts
  fmt [-indent] [-jwcc] FILE
                      decode FILE and write it back in canonical form
  deps FILE SEQUENCE  print the commands a sequence depends on
  list FILE           print the category and name of each record

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("pnobj: ")
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	var err error
	switch cmd {
	case "check":
		err = runCheck(args)
	case "fmt":
		err = runFmt(args)
	case "deps":
		err = runDeps(args)
	case "list":
		err = runList(args)
	default:
		log.Printf("unknown command %q", cmd)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// load reads and decodes the document at path. If jwcc is true, comments and
// trailing commas are removed from the input before decoding.
func load(path string, jwcc bool) (*pnobj.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if jwcc {
		data, err = hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	opts := &decode.Options{
		AllowComments:       *comments,
		AllowTrailingCommas: *comments,
		MaxBytes:            *maxBytes,
	}
	if *verbose {
		opts.Logf = log.Printf
	}
	reg, err := decode.Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

func oneFile(name string, fs *flag.FlagSet, args []string, extra int) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1+extra {
		return fmt.Errorf("%s: wrong number of arguments (got %d, want %d)", name, fs.NArg(), 1+extra)
	}
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	if err := oneFile("check", fs, args, 0); err != nil {
		return err
	}
	reg, err := load(fs.Arg(0), false)
	if err != nil {
		return err
	}
	for _, c := range pnobj.Categories() {
		if n := len(reg.ByCategory(c)); n != 0 {
			fmt.Printf("%-18s %d\n", c, n)
		}
	}
	return reg.Validate()
}

func runFmt(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	indent := fs.Bool("indent", false, "Indent the output")
	jwcc := fs.Bool("jwcc", false, "Accept JWCC (JSON with comments and commas) input")
	if err := oneFile("fmt", fs, args, 0); err != nil {
		return err
	}
	reg, err := load(fs.Arg(0), *jwcc)
	if err != nil {
		return err
	}
	out, err := encode.Marshal(reg, &encode.Options{Indent: *indent})
	if err != nil {
		return err
	}
	if !*indent {
		out = append(out, '\n')
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runDeps(args []string) error {
	fs := flag.NewFlagSet("deps", flag.ExitOnError)
	if err := oneFile("deps", fs, args, 1); err != nil {
		return err
	}
	reg, err := load(fs.Arg(0), false)
	if err != nil {
		return err
	}
	seq, ok := reg.Find(pnobj.CatSequence, fs.Arg(1))
	if !ok {
		return fmt.Errorf("no sequence named %q", fs.Arg(1))
	}
	for _, obj := range pnobj.CommandList(seq) {
		fmt.Println(obj.Head())
	}
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	if err := oneFile("list", fs, args, 0); err != nil {
		return err
	}
	reg, err := load(fs.Arg(0), false)
	if err != nil {
		return err
	}
	for _, c := range pnobj.Categories() {
		for _, obj := range reg.ByCategory(c) {
			fmt.Printf("%-18s %s\n", c, pnobj.NameOf(obj))
		}
	}
	return nil
}

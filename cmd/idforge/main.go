// Command idforge generates, parses and validates identifiers of every
// supported kind from the terminal.
//
// Usage:
//
//	idforge generate -type ulid [-n count]
//	idforge parse -type ksuid <id>
//	idforge validate -type xid <id>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idforge/idforge"
	"github.com/idforge/idforge/internal/config"
	pkglog "github.com/idforge/idforge/pkg/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "idforge",
	})
	logger := pkglog.L()

	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	kindFlag := fs.String("type", "uuid", "identifier kind")
	count := fs.Int("n", 1, "number of ids to generate")
	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	kind := idforge.Kind(*kindFlag)
	gen, err := idforge.New(kind, cfg.Generators())
	if err != nil {
		logger.Fatal().Err(err).Str(pkglog.FieldKind, *kindFlag).Msg("failed to create generator")
	}

	switch os.Args[1] {
	case "generate":
		ids, err := gen.GenerateBatch(*count)
		if err != nil {
			logger.Fatal().Err(err).Str(pkglog.FieldKind, *kindFlag).Int(pkglog.FieldCount, *count).Msg("generation failed")
		}
		for _, id := range ids {
			fmt.Println(id.String())
		}

	case "parse":
		if fs.NArg() != 1 {
			usage()
			os.Exit(2)
		}
		id, err := gen.Parse(fs.Arg(0))
		if err != nil {
			logger.Fatal().Err(err).Str(pkglog.FieldKind, *kindFlag).Msg("parse failed")
		}
		fmt.Printf("string:   %s\n", id.String())
		fmt.Printf("bytes:    %x\n", id.Bytes())
		fmt.Printf("sortable: %t\n", id.Sortable())
		if t, ok := id.Time(); ok {
			fmt.Printf("time:     %s\n", t.UTC())
		}
		if kind == idforge.KindSnowflake {
			fmt.Printf("node:     %d\n", id.NodeID())
			fmt.Printf("sequence: %d\n", id.Sequence())
		}
		if kind == idforge.KindUUID {
			fmt.Printf("version:  %d\n", id.Version())
		}
		if kind == idforge.KindTypeID {
			fmt.Printf("prefix:   %s\n", id.Prefix())
		}
		if n := id.Numbers(); len(n) > 0 {
			fmt.Printf("numbers:  %v\n", n)
		}

	case "validate":
		if fs.NArg() != 1 {
			usage()
			os.Exit(2)
		}
		if gen.IsValid(fs.Arg(0)) {
			fmt.Println("valid")
		} else {
			fmt.Println("invalid")
			os.Exit(1)
		}

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: idforge <generate|parse|validate> -type <kind> [-n count] [id]\nkinds: %v\n", idforge.Kinds())
}

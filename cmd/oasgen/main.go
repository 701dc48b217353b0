package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/parkingwang/oasgen"
	"github.com/parkingwang/oasgen/pkg/http/web"
	"github.com/parkingwang/oasgen/pkg/oas"
)

const usage = `usage: oasgen [-config config.yaml] <command>

commands:
  export    build the document and write it to oas.yaml, publish it when oas.publish.url is set
  validate  build the document and print the validation errors
  serve     serve the document over http
`

var info = oasgen.AppInfo{
	Name:        "oasgen",
	Description: "OpenAPI document generator",
}

func main() {
	fs := flag.NewFlagSet("oasgen", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "application config file")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	oasgen.SetConfig(*cfgPath)
	app := oasgen.New(info)

	switch cmd := fs.Arg(0); cmd {
	case "serve":
		app.Provide(app.CreateAssembler)
		app.Run(func(asm *oas.Assembler) *web.Server {
			return app.CreateWebServer(asm)
		})
	case "export", "validate":
		asm, err := app.CreateAssembler()
		if err != nil {
			slog.Error("load document config failed", slog.Any("err", err))
			os.Exit(1)
		}
		ctx := context.Background()
		if cmd == "export" {
			err = oasgen.ExportDocument(ctx, asm)
		} else {
			_, err = asm.Build(ctx)
		}
		_ = app.Shutdown(ctx)
		if err != nil {
			report(os.Stderr, err)
			os.Exit(1)
		}
		if cmd == "validate" {
			fmt.Println("document is valid")
		}
	default:
		fs.Usage()
		os.Exit(2)
	}
}

func report(w io.Writer, err error) {
	var verr *oas.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintln(w, err)
		return
	}
	groups := verr.Messages()
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "document is invalid (%d errors)\n", len(verr.Issues))
	for _, k := range keys {
		fmt.Fprintf(w, "%s:\n", k)
		for _, msg := range groups[k] {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
}

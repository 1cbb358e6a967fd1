// Command tridemo runs the tri demo catalog.
//
// With no flags it opens the triangle demo on the best interactive host.
//
//	tridemo -list
//	tridemo -demo phong
//	tridemo -demo rose -texture assets/rose.png
//	tridemo -demo hsv -host offscreen -frames 60 -out hsv.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gogpu/tri"
	"github.com/gogpu/tri/host"
	_ "github.com/gogpu/tri/host/desktop"
	_ "github.com/gogpu/tri/host/headless"
	_ "github.com/gogpu/tri/host/offscreen"
	_ "github.com/gogpu/tri/host/window"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("tridemo: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tridemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		demoName = fs.String("demo", tri.DefaultDemo, "demo to run (see -list)")
		hostName = fs.String("host", "", "host: "+strings.Join(host.Priority, ", ")+" (default: first available)")
		list     = fs.Bool("list", false, "list demos and hosts, then exit")
		texture  = fs.String("texture", "", "image for textured demos (default "+tri.RoseTexture+")")
		frames   = fs.Int("frames", 0, "stop after this many frames (0: until exit)")
		out      = fs.String("out", "", "write the last frame to this PNG")
		width    = fs.Int("width", 0, "surface width (default: demo size)")
		height   = fs.Int("height", 0, "surface height (default: demo size)")
		seed     = fs.Uint64("seed", 0, "random seed for demos with random normals")
		verbose  = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "tridemo: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return exitUsage
	}
	if *width < 0 || *height < 0 || *frames < 0 {
		fmt.Fprintln(stderr, "tridemo: -width, -height and -frames must not be negative")
		return exitUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	tri.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if *list {
		printList(stdout)
		return exitOK
	}

	demo, err := tri.Lookup(*demoName)
	if err != nil {
		fmt.Fprintf(stderr, "tridemo: %v (try -list)\n", err)
		return exitUsage
	}

	cfg := host.Config{
		Width:       *width,
		Height:      *height,
		Frames:      *frames,
		Output:      *out,
		TexturePath: *texture,
		Seed:        *seed,
	}
	if err := host.Run(ctx, *hostName, demo, cfg); err != nil {
		var initErr *tri.InitError
		switch {
		case errors.Is(err, host.ErrUnknownHost):
			log.Print(err)
			return exitUsage
		case errors.As(err, &initErr):
			log.Printf("%s failed at %v: %v", initErr.Demo, initErr.Stage, initErr.Err)
		default:
			log.Print(err)
		}
		return exitError
	}
	return exitOK
}

func printList(w io.Writer) {
	fmt.Fprintln(w, "demos:")
	for _, name := range tri.Names() {
		d := tri.MustLookup(name)
		marker := " "
		if name == tri.DefaultDemo {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %-18s %-9s %s\n", marker, name, d.Variant, d.Title)
	}
	fmt.Fprintln(w, "hosts:")
	for _, name := range host.Available() {
		fmt.Fprintf(w, "   %s\n", name)
	}
}

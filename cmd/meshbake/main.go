package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"bloom-viewer/liblog"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

type bakeArgs struct {
	out      string
	raw      bool
	force    bool
	logLevel string
}

func printUsage(flags *flag.FlagSet) {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [arguments] <model.obj|model.gltf|model.glb>...\n\n", exe)
	fmt.Fprintf(os.Stderr, "Converts models into mesh caches the viewer loads instead of the source.\n\n")
	fmt.Fprintf(os.Stderr, "The arguments are:\n\n")
	flags.SetOutput(os.Stderr)
	flags.PrintDefaults()
	os.Exit(1)
}

func main() {
	args := bakeArgs{logLevel: "info"}
	flags := flag.NewFlagSet("meshbake", flag.ExitOnError)
	flags.StringVar(&args.out, "out", args.out, "the output directory, next to each input when empty")
	flags.StringVar(&args.out, "o", args.out, "shorthand for out")
	flags.BoolVar(&args.raw, "raw", args.raw, "write uncompressed .geo files")
	flags.BoolVar(&args.force, "force", args.force, "rebake caches that are newer than their source")
	flags.BoolVar(&args.force, "f", args.force, "shorthand for force")
	flags.StringVar(&args.logLevel, "log-level", args.logLevel, "debug, info, warn or error")
	flags.Usage = func() { printUsage(flags) }
	harderr(flags.Parse(os.Args[1:]))

	harderr(liblog.Init(args.logLevel, false))
	defer liblog.Sync()

	inputs := gatherInputFiles(flags.Args())
	if len(inputs) == 0 {
		printUsage(flags)
	}
	if args.out != "" {
		harderr(os.MkdirAll(args.out, 0755))
	}

	failed := 0
	for _, input := range inputs {
		output := outputPath(input, args.out, !args.raw)
		if !args.force && isUpToDate(input, output) {
			liblog.Log.Info("up to date", zap.String("file", output))
			continue
		}
		result, err := bake(input, output)
		if err != nil {
			liblog.Log.Error("could not bake model", zap.String("file", input), zap.Error(err))
			failed++
			continue
		}
		liblog.Log.Info("baked model",
			zap.String("file", output),
			zap.Int("meshes", result.meshes),
			zap.Int("materials", result.materials),
			zap.Int("vertices", result.vertices))
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func gatherInputFiles(globs []string) []string {
	matched := []string{}
	for _, g := range globs {
		m, err := filepath.Glob(g)
		if err != nil {
			liblog.Log.Warn("bad pattern", zap.String("pattern", g), zap.Error(err))
			continue
		}
		matched = append(matched, m...)
	}
	slices.Sort(matched)
	return slices.Compact(matched)
}

func harderr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

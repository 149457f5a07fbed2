// atlaspack packs every PNG in a folder into a single texture atlas
// plus a metadata sidecar describing each image's placement.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaserr"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlasconfig"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaslog"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/imageio"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/metadata"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/packer"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is main's logic, pulled out so it returns an exit code instead
// of calling os.Exit directly — main is the only place that does.
func run(argv []string) int {
	fs := flag.NewFlagSet("atlaspack", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "path to an atlaspack.yaml overriding defaults")
	width := fs.Int("width", 0, "atlas width cap (0 = use config/default)")
	height := fs.Int("height", 0, "atlas height cap (0 = use config/default)")
	noMerge := fs.Bool("no-merge", false, "disable duplicate-image merging")
	logLevel := fs.String("log-level", "", "debug, info, warn, or error")
	logFile := fs.String("log-file", "", "optional log file path")
	correctedCaps := fs.Bool("corrected-expansion-caps", false, "use the corrected (non-crossed) root-expansion cap comparison")
	diagnoseRotate := fs.Bool("diagnose-rotate", false, "also write a 90-degree-rotated copy of the atlas for visual inspection")
	crop := fs.Bool("crop", false, "trim fully-transparent borders from each source image before packing")

	if err := fs.Parse(argv); err != nil {
		return 2
	}

	args := fs.Args()
	if len(args) == 1 && args[0] == "help" {
		printUsage()
		return 0
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "error: expected exactly one folder argument")
		printUsageTo(os.Stderr)
		return 2
	}
	folder := args[0]

	overrides := atlasconfig.Overrides{}
	if *noMerge {
		overrides.Merge = boolPtr(false)
	}
	if *width > 0 {
		overrides.TextureWidth = width
	}
	if *height > 0 {
		overrides.TextureHeight = height
	}
	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}
	if *logFile != "" {
		overrides.LogFile = logFile
	}
	if *correctedCaps {
		overrides.CorrectedExpansionCaps = correctedCaps
	}

	cfg, err := atlasconfig.Load(*configPath, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	if err := atlaslog.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: initializing logger: %v\n", err)
		return 1
	}
	defer atlaslog.Sync()
	log := atlaslog.Log

	start := time.Now()
	if err := pack(folder, cfg, log, *diagnoseRotate, *crop); err != nil {
		log.Error("pack failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	log.Info("pack complete", zap.Duration("elapsed", time.Since(start)))
	return 0
}

func pack(folder string, cfg *atlasconfig.Config, log *zap.Logger, diagnoseRotate, crop bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrap(atlaserr.ErrInvariant, e.Error())
				return
			}
			err = errors.Wrapf(atlaserr.ErrInvariant, "%v", r)
		}
	}()

	matches, globErr := filepath.Glob(filepath.Join(folder, "*.png"))
	if globErr != nil {
		return errors.Wrap(atlaserr.ErrIO, "enumerating folder: "+globErr.Error())
	}
	if len(matches) == 0 {
		return errors.Wrapf(atlaserr.ErrUsage, "no .png files found in %q", folder)
	}

	images := make([]*packer.Image, 0, len(matches))
	for _, path := range matches {
		f, openErr := os.Open(path)
		if openErr != nil {
			return errors.Wrap(atlaserr.ErrIO, "opening "+path+": "+openErr.Error())
		}
		decoded, decodeErr := imageio.Decode(f)
		f.Close()
		if decodeErr != nil {
			return errors.Wrap(decodeErr, "decoding "+path)
		}
		if crop {
			decoded = imageio.CropToContent(decoded, 0)
		}

		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		images = append(images, packer.NewImage(abs, decoded))
		log.Debug("decoded image", zap.String("path", abs), zap.Int("width", decoded.Width), zap.Int("height", decoded.Height))
	}

	packCfg := &packer.Config{
		TextureWidth:           cfg.TextureWidth,
		TextureHeight:          cfg.TextureHeight,
		BytesPerPixel:          cfg.BytesPerPixel,
		Merge:                  cfg.Merge,
		CorrectedExpansionCaps: cfg.CorrectedExpansionCaps,
	}
	result, packErr := packer.Pack(images, packCfg)
	if packErr != nil {
		return packErr
	}
	log.Info("packed",
		zap.Int("placed", len(result.Placed)),
		zap.Int("duplicates", len(result.Duplicates)),
		zap.Int("atlasWidth", result.AtlasWidth),
		zap.Int("atlasHeight", result.AtlasHeight))

	atlasOut := imageio.Image{
		Pixels: result.AtlasPixels,
		Width:  result.AtlasWidth,
		Height: result.AtlasHeight,
		BPP:    result.BPP,
		Stride: result.AtlasStride,
	}

	atlasFile, createErr := os.Create(filepath.Join(folder, "atlas.png"))
	if createErr != nil {
		return errors.Wrap(atlaserr.ErrIO, "creating atlas.png: "+createErr.Error())
	}
	encodeErr := imageio.EncodeAtlas(atlasFile, atlasOut)
	closeErr := atlasFile.Close()
	if encodeErr != nil {
		return encodeErr
	}
	if closeErr != nil {
		return errors.Wrap(atlaserr.ErrIO, "closing atlas.png: "+closeErr.Error())
	}

	if diagnoseRotate {
		rotated := imageio.RotateDiagnostic90(atlasOut)
		rotFile, rotCreateErr := os.Create(filepath.Join(folder, "atlas_rotated_diagnostic.png"))
		if rotCreateErr != nil {
			return errors.Wrap(atlaserr.ErrIO, "creating atlas_rotated_diagnostic.png: "+rotCreateErr.Error())
		}
		rotEncodeErr := imageio.EncodeAtlas(rotFile, rotated)
		rotCloseErr := rotFile.Close()
		if rotEncodeErr != nil {
			return rotEncodeErr
		}
		if rotCloseErr != nil {
			return errors.Wrap(atlaserr.ErrIO, "closing atlas_rotated_diagnostic.png: "+rotCloseErr.Error())
		}
	}

	metaFile, createErr := os.Create(filepath.Join(folder, "atlasMetadata.txt"))
	if createErr != nil {
		return errors.Wrap(atlaserr.ErrIO, "creating atlasMetadata.txt: "+createErr.Error())
	}
	writeErr := metadata.Write(metaFile,
		metadata.FromImages(result.Placed),
		metadata.FromImages(result.Duplicates),
		result.AtlasWidth, result.AtlasHeight)
	closeErr = metaFile.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return errors.Wrap(atlaserr.ErrIO, "closing atlasMetadata.txt: "+closeErr.Error())
	}

	return nil
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, atlaserr.ErrUsage):
		return 2
	default:
		return 1
	}
}

func boolPtr(b bool) *bool { return &b }

func printUsage() {
	printUsageTo(os.Stdout)
}

func printUsageTo(w *os.File) {
	fmt.Fprintln(w, `atlaspack - pack a folder of PNGs into a texture atlas

Usage:
  atlaspack <folder>
  atlaspack help

Flags:
  -config string    path to an atlaspack.yaml overriding defaults
  -width int         atlas width cap
  -height int        atlas height cap
  -no-merge          disable duplicate-image merging
  -log-level string  debug, info, warn, or error
  -log-file string   optional log file path
  -corrected-expansion-caps
                      use the corrected root-expansion cap comparison
  -crop               trim transparent borders from sources before packing
  -diagnose-rotate    also write a rotated diagnostic copy of the atlas

Writes atlas.png and atlasMetadata.txt into <folder>.`)
}

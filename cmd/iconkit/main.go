package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/happenhub/iconkit"
	"github.com/happenhub/iconkit/utils"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const HelpBanner = `
┬┌─┐┌─┐┌┐┌┬┌─┬┌┬┐
││  │ ││││├┴┐│ │
┴└─┘└─┘┘└┘┴ ┴┴ ┴

HappenHub launcher icon generator.
    Version: %s

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	root     = flag.String("root", ".", "Directory the manifest paths are resolved against")
	manifest = flag.String("manifest", "", "Target manifest (TOML); the built-in one is used when empty")
	size     = flag.Int("size", 0, "Render a single icon of this size instead of the manifest")
	out      = flag.String("out", pipeName, "Destination of the single icon rendered with -size")
	workers  = flag.Int("conc", runtime.NumCPU(), "Number of icons to write concurrently")
	verify   = flag.Bool("verify", false, "Read back and check every written PNG")
	debug    = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	}).Level(level).With().Timestamp().Logger()

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ ICONKIT", utils.StatusMessage),
		utils.DecorateText("is rendering the icons...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	// Capture CTRL-C signal: cancel the run and restore the cursor visibility back.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := time.Now()
	renderer := iconkit.NewRenderer()

	var err error
	if *size > 0 {
		err = renderSingle(renderer, *size, *out)
		printStatus(*out, err)
	} else {
		spinner.Start()
		err = renderManifest(ctx, renderer, logger)
		spinner.StopMsg = fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ ICONKIT", utils.StatusMessage),
			utils.DecorateText("is rendering the icons... ✔", utils.DefaultMessage))
		spinner.Stop()
		printStatus(*root, err)
	}
	if err != nil {
		spinner.RestoreCursor()
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// renderManifest writes every target of the selected manifest below the root directory.
func renderManifest(ctx context.Context, r *iconkit.Renderer, logger zerolog.Logger) error {
	var (
		m   *iconkit.Manifest
		err error
	)
	if *manifest == "" {
		m, err = iconkit.DefaultManifest()
	} else {
		m, err = iconkit.LoadManifestFile(*manifest)
	}
	if err != nil {
		return err
	}
	logger.Debug().Ints("sizes", m.Sizes()).Int("targets", len(m.Targets)).Msg("manifest loaded")

	op := &iconkit.Ops{
		Root:    *root,
		Workers: *workers,
		Verify:  *verify,
		Logger:  logger,
	}
	_, err = r.Execute(ctx, m, op)
	return err
}

// renderSingle renders one icon to a file or to stdout. The destination is
// only created once the icon has been encoded.
func renderSingle(r *iconkit.Renderer, size int, dest string) error {
	format := iconkit.FormatPNG
	if dest != pipeName {
		format = filepath.Ext(dest)
	}

	img, err := r.Render(size)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := iconkit.EncodeImage(&buf, format, img); err != nil {
		return err
	}

	w, err := destination(dest)
	if err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		if dest != pipeName {
			w.(io.Closer).Close()
		}
		return fmt.Errorf("unable to write the destination file: %w", err)
	}
	if dest != pipeName {
		return w.(io.Closer).Close()
	}
	return nil
}

// destination converts the output path to a writer.
func destination(dest string) (io.Writer, error) {
	if dest == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, fmt.Errorf("unable to create the destination directory: %w", err)
	}
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, nil
}

// printStatus displays the outcome of the run.
func printStatus(dest string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s%s",
			utils.DecorateText("\nError rendering the icons:", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
		return
	}
	if dest != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe icons have been saved in: %s %s\n",
			utils.DecorateText(dest, utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

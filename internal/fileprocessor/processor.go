// Package fileprocessor handles the ROM loading workflow
package fileprocessor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/patois/NDSLdr/internal/annotate"
	"github.com/patois/NDSLdr/internal/loader"
	"github.com/patois/NDSLdr/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile runs the complete workflow for one ROM file: recognize the
// format, choose the processor image, load it into an address space and
// write the annotation output.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	file, err := os.Open(opts.Input)
	if err != nil {
		return fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("reading file info of %s: %w", opts.Input, err)
	}

	ldr := loader.New(logger)
	hdr, ok := ldr.Accept(file, info.Size())
	if !ok {
		return fmt.Errorf("%s is not a Nintendo DS ROM", opts.Input)
	}

	logger.Info("Recognized Nintendo DS ROM",
		log.String("title", hdr.Title),
		log.String("code", hdr.GameCode),
		log.Uint8("version", hdr.ROMVersion))

	choice, err := SelectCore(opts, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("selecting core: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := ldr.Load(file, info.Size(), hdr, choice)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	logger.Info("Image loaded",
		log.Stringer("processor", result.Plan.Variant),
		log.Hex("start", result.Plan.Start),
		log.Hex("end", result.Plan.End),
		log.Hex("entry", result.Plan.Entry))

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	if err := annotate.Write(writer, hdr, result.Plan); err != nil {
		return fmt.Errorf("writing annotations: %w", err)
	}
	return nil
}

// SelectCore turns the core option into a load choice. Without an explicit
// option the user is asked which image to load, with abort as third outcome.
func SelectCore(opts options.Program, in io.Reader, out io.Writer) (loader.Choice, error) {
	switch opts.Core {
	case options.CoreARM9:
		return loader.ChooseARM9, nil
	case options.CoreARM7:
		return loader.ChooseARM7, nil
	}

	fmt.Fprintln(out, "This file contains ARM9 and ARM7 code.")
	fmt.Fprint(out, "Load the ARM9 executable? [Y]es / [n]o loads ARM7 / [a]bort: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return loader.ChooseAbort, fmt.Errorf("reading answer: %w", err)
		}
		return loader.ChooseAbort, nil
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "", "y", "yes":
		return loader.ChooseARM9, nil
	case "n", "no":
		return loader.ChooseARM7, nil
	default:
		return loader.ChooseAbort, nil
	}
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("ndsldr", log.String("version", buildinfo.Version(version, commit, date)))
}

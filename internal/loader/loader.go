// Package loader drives ROM recognition and image loading.
package loader

import (
	"errors"
	"fmt"
	"io"

	"github.com/patois/NDSLdr/internal/layout"
	"github.com/patois/NDSLdr/internal/memspace"
	"github.com/patois/NDSLdr/internal/nds"
	"github.com/retroenv/retrogolib/log"
)

// Choice is the three way outcome of selecting which image to load.
type Choice int

const (
	// ChooseARM9 loads the first core image.
	ChooseARM9 Choice = iota
	// ChooseARM7 loads the second core image.
	ChooseARM7
	// ChooseAbort cancels the load.
	ChooseAbort
)

var (
	// ErrAborted is returned if the image selection was cancelled.
	ErrAborted = errors.New("load aborted")
	// ErrSegmentCreation is returned if a required memory segment could not
	// be created.
	ErrSegmentCreation = errors.New("creating memory segment failed")
)

// Result of a completed load. A result returned together with an error is
// incomplete and must be discarded as a whole.
type Result struct {
	Header *nds.Header
	Plan   layout.Plan
	Space  *memspace.Space
}

// Loader recognizes ROM files and loads one of their images into a fresh
// address space. It holds no per file state, one loader can process any
// number of files in sequence.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{logger: logger}
}

// Accept reports whether the file is a ROM this loader handles and returns
// the decoded header if so. Recognition failures are silent, an unrecognized
// file is simply not this format and other handlers may try it.
func (l *Loader) Accept(r io.ReaderAt, size int64) (*nds.Header, bool) {
	if size < nds.HeaderLength {
		return nil, false
	}

	buf := make([]byte, nds.HeaderLength)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return nil, false
	}

	hdr, err := nds.DecodeValid(buf)
	if err != nil {
		l.logger.Debug("ROM not accepted", log.Err(err))
		return nil, false
	}
	return hdr, true
}

// Load maps the chosen image into a new address space. The space contains
// one code segment per region table entry no matter which region the image
// occupies, the image bytes are copied in as the last step. Every failure
// aborts the whole load, there is no partial result.
func (l *Loader) Load(r io.ReaderAt, size int64, hdr *nds.Header, choice Choice) (*Result, error) {
	if choice == ChooseAbort {
		return nil, ErrAborted
	}
	variant := layout.ARM9
	if choice == ChooseARM7 {
		variant = layout.ARM7
	}

	plan, err := layout.Resolve(hdr, variant, size)
	if err != nil {
		return nil, fmt.Errorf("resolving layout: %w", err)
	}

	space := memspace.New()
	for _, region := range layout.Regions {
		if _, err := space.AddSegment("RAM", memspace.Code, region.Start, region.End); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSegmentCreation, err)
		}
	}

	data := make([]byte, plan.End-plan.Start)
	if _, err := r.ReadAt(data, int64(plan.ROMOffset)); err != nil {
		return nil, fmt.Errorf("reading image at offset 0x%X: %w", plan.ROMOffset, err)
	}

	written := space.Write(plan.Start, data)
	if written < len(data) {
		l.logger.Debug("image extends past mapped segments",
			log.Int("dropped", len(data)-written))
	}

	l.logger.Debug("image loaded",
		log.Stringer("processor", plan.Variant),
		log.Hex("start", plan.Start),
		log.Hex("end", plan.End),
		log.Hex("entry", plan.Entry))

	return &Result{
		Header: hdr,
		Plan:   plan,
		Space:  space,
	}, nil
}

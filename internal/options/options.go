// Package options contains the program options.
package options

// Core selection values for the Core option.
const (
	CoreARM9 = "arm9"
	CoreARM7 = "arm7"
)

// Program options of the loader.
type Program struct {
	Input  string // ROM file to load
	Output string // annotation output file, stdout if empty

	// Core selects the processor image to load, CoreARM9 or CoreARM7.
	// If empty the user is asked interactively.
	Core string

	Debug bool
	Quiet bool
}

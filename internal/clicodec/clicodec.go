// Package clicodec builds a codec.Codec from the CLI surface's common
// flag set (--codec, --M, --Q, --fun, --h1, --h2, --debug, --stats),
// shared by every cmd/ring* binary so each one only needs to declare
// the flags it's interested in.
package clicodec

import (
	"flag"
	"os"

	"github.com/ringcast/ringcast/codec"
)

// Flags holds the common codec flag values, registered on fs.
type Flags struct {
	CSVPath string
	M, Q    int
	Fun     int
	H1, H2  int
	Debug   bool
	Stats   bool
}

// Register adds the common codec flags to fs and returns a Flags whose
// fields are populated after fs.Parse.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.CSVPath, "codec", "", "coefficient table CSV path (required)")
	fs.IntVar(&f.M, "M", 8, "ring bit width")
	fs.IntVar(&f.Q, "Q", 2, "symbol bit width")
	fs.IntVar(&f.Fun, "fun", 1, "function family (1-5)")
	fs.IntVar(&f.H1, "h1", 0, "initial rolling state h1")
	fs.IntVar(&f.H2, "h2", 1, "initial rolling state h2")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug mode")
	fs.BoolVar(&f.Stats, "stats", false, "print codec stats on exit")
	return f
}

// Build configures a Codec from f and loads its coefficient table from
// f.CSVPath.
func (f *Flags) Build() (*codec.Codec, error) {
	c, err := codec.New(codec.Params{
		BitsM:     f.M,
		BitsQ:     f.Q,
		FunType:   f.Fun,
		H1:        int32(f.H1),
		H2:        int32(f.H2),
		DebugMode: f.Debug,
		StatsMode: f.Stats,
	})
	if err != nil {
		return nil, err
	}
	file, oerr := os.Open(f.CSVPath)
	if oerr != nil {
		return nil, oerr
	}
	defer file.Close()
	table, cerr := codec.LoadCoefficientsCSV(file, f.Q, f.Fun)
	if cerr != nil {
		return nil, cerr
	}
	if err := c.LoadCoefficients(table); err != nil {
		return nil, err
	}
	return c, nil
}

// Command huffc compresses and decompresses files with fixed-width symbol
// Huffman coding.
//
//	huffc [-mode roundtrip|compress|decompress] [-w 1|2|4|8] [-table text|proto|cbor] [-pmf CSV] FILE
//
// compress writes FILE.hc and FILE.hct, decompress reads them back and
// writes FILE_decoded, roundtrip does both. With -pmf, compress also writes
// the cumulative symbol counts sampled every -pmf-interval bytes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/egonelbre/exp-huffman/huffman"
	"github.com/egonelbre/exp-huffman/internal/logger"
)

func main() {
	mode := flag.String("mode", "roundtrip", "roundtrip, compress or decompress")
	width := flag.Int("w", 4, "symbol width in bytes: 1, 2, 4 or 8")
	table := flag.String("table", "text", "table format written by compress: text, proto or cbor")
	level := flag.String("log", "INFO", "log level")
	printTree := flag.Bool("print-tree", false, "print the Huffman tree before compressing")
	progress := flag.Bool("progress", false, "log progress for every flushed chunk")
	pmf := flag.String("pmf", "", "write the symbol count history as CSV to this file")
	pmfInterval := flag.Int("pmf-interval", huffman.DefaultPMFInterval, "bytes between symbol count checkpoints")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: huffc [flags] FILE")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	logger.New(*level)
	defer logger.OnExit()

	cfg := config{
		Mode:        *mode,
		Width:       huffman.Width(*width),
		Table:       *table,
		PrintTree:   *printTree,
		Progress:    *progress,
		PMF:         *pmf,
		PMFInterval: *pmfInterval,
	}
	if err := run(path, cfg); err != nil {
		logger.Sugar.Errorf("%v", err)
		logger.OnExit()
		os.Exit(1)
	}
}

type config struct {
	Mode        string
	Width       huffman.Width
	Table       string
	PrintTree   bool
	Progress    bool
	PMF         string
	PMFInterval int
}

func run(path string, cfg config) error {
	format, err := huffman.ParseTableFormat(cfg.Table)
	if err != nil {
		return err
	}

	opts := []huffman.Option{
		huffman.WithWidth(cfg.Width),
		huffman.WithTableFormat(format),
	}
	if cfg.Progress {
		opts = append(opts, huffman.WithProgress(func(p huffman.Progress) {
			if p.Total > 0 {
				logger.Sugar.Infof("%s: %.2f%%", p.Phase, float64(p.Done)/float64(p.Total)*100)
			} else {
				logger.Sugar.Infof("%s: %d bytes", p.Phase, p.Done)
			}
		}))
	}

	compress := cfg.Mode == "roundtrip" || cfg.Mode == "compress"
	decompress := cfg.Mode == "roundtrip" || cfg.Mode == "decompress"
	if !compress && !decompress {
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	logger.Sugar.Infof("%v symbols", cfg.Width)

	if cfg.PrintTree {
		if err := dumpTree(os.Stdout, path, cfg.Width); err != nil {
			return err
		}
	}

	if compress {
		if cfg.PMF != "" {
			f, err := os.Create(cfg.PMF)
			if err != nil {
				return err
			}
			defer f.Close()
			opts = append(opts, huffman.WithPMF(f, cfg.PMFInterval))
		}

		start := time.Now()
		if _, err := huffman.Compress(path, opts...); err != nil {
			return err
		}
		logger.Sugar.Infof("compressed in %v", time.Since(start))
	}

	if decompress {
		start := time.Now()
		if err := huffman.Decompress(path, opts...); err != nil {
			return err
		}
		logger.Sugar.Infof("decompressed in %v", time.Since(start))
	}
	return nil
}

func dumpTree(w io.Writer, path string, width huffman.Width) error {
	if !width.Valid() {
		return fmt.Errorf("%w: %d", huffman.ErrInvalidWidth, int(width))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", huffman.ErrSourceUnreadable, err)
	}
	freq := huffman.CountFrequencies(huffman.Symbols(data, width))
	return huffman.BuildTree(freq).Format(w)
}

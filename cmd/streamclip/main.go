// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/bytestream/lib/bytesize"
	"github.com/bureau-foundation/bytestream/lib/compress"
	"github.com/bureau-foundation/bytestream/lib/digest"
	"github.com/bureau-foundation/bytestream/lib/stream"
	"github.com/bureau-foundation/bytestream/lib/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "--version" {
		fmt.Fprintln(stdout, version.Full())
		return nil
	}

	cfg := Default()

	flagSet := pflag.NewFlagSet("streamclip", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	configPath := flagSet.String("config", "", "YAML config file (explicit flags override its values)")
	flagSet.StringVar(&cfg.In, "in", cfg.In, `input file, "-" for stdin`)
	flagSet.StringVar(&cfg.Out, "out", cfg.Out, `output file, "-" for stdout`)
	flagSet.Var(&cfg.Limit, "limit", "cap the content at this size (e.g. 64KiB, 1.5MiB), 0 for unlimited")
	flagSet.BoolVar(&cfg.Strict, "strict", cfg.Strict, "fail instead of truncating when the input exceeds --limit")
	flagSet.StringVar(&cfg.Decompress, "decompress", cfg.Decompress, "codec the input is compressed with: none, lz4, zstd")
	flagSet.StringVar(&cfg.Compress, "compress", cfg.Compress, "codec to compress the output with: none, lz4, zstd")
	flagSet.StringVar(&cfg.Manifest, "manifest", cfg.Manifest, "write a CBOR chunk manifest of the content to this file")
	flagSet.Var(&cfg.Chunk, "chunk", "manifest chunk size")
	flagSet.BoolVar(&cfg.Digest, "digest", cfg.Digest, "print the content digest to stderr")
	force := flagSet.Bool("force", false, "allow compressed output on a terminal")
	verbose := flagSet.Bool("verbose", false, "log pipeline detail at debug level")
	help := flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet, stderr)
			return nil
		}
		return err
	}
	if *help {
		printHelp(flagSet, stderr)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	if *configPath != "" {
		loaded, err := LoadFile(*configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(&loaded, flagSet, cfg)
		cfg = loaded
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	stages, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	if stages.compress != compress.None && cfg.Out == "-" && !*force && isTerminal(stdout) {
		return fmt.Errorf("refusing to write %s output to a terminal; redirect it, use --out, or pass --force", stages.compress)
	}

	var source io.Reader = stdin
	if cfg.In != "-" {
		file, err := os.Open(cfg.In)
		if err != nil {
			return err
		}
		defer file.Close()
		source = file
	}

	var sink io.Writer = stdout
	var outFile *os.File
	if cfg.Out != "-" {
		outFile, err = os.Create(cfg.Out)
		if err != nil {
			return err
		}
		sink = outFile
	}

	result, err := stages.process(source, sink)
	if err != nil {
		if outFile != nil {
			outFile.Close()
		}
		return err
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", cfg.Out, err)
		}
	}

	logger.Debug("pipeline complete",
		"in", cfg.In,
		"out", cfg.Out,
		"content_bytes", result.size,
		"decompress", stages.decompress.String(),
		"compress", stages.compress.String(),
	)

	if result.manifest != nil {
		encoded, err := digest.EncodeManifest(result.manifest)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Manifest, encoded, 0o644); err != nil {
			return fmt.Errorf("writing manifest: %w", err)
		}
		logger.Debug("manifest written",
			"path", cfg.Manifest,
			"chunks", len(result.manifest.Chunks),
			"chunk_size", bytesize.Size(result.manifest.ChunkSize).String(),
		)
	}
	if cfg.Digest {
		fmt.Fprintf(stderr, "%s  %s\n", result.sum, cfg.In)
	}
	return nil
}

// applyFlagOverrides copies values of explicitly set flags from flags
// into cfg, so the command line wins over the config file.
func applyFlagOverrides(cfg *Config, flagSet *pflag.FlagSet, flags Config) {
	if flagSet.Changed("in") {
		cfg.In = flags.In
	}
	if flagSet.Changed("out") {
		cfg.Out = flags.Out
	}
	if flagSet.Changed("limit") {
		cfg.Limit = flags.Limit
	}
	if flagSet.Changed("strict") {
		cfg.Strict = flags.Strict
	}
	if flagSet.Changed("decompress") {
		cfg.Decompress = flags.Decompress
	}
	if flagSet.Changed("compress") {
		cfg.Compress = flags.Compress
	}
	if flagSet.Changed("manifest") {
		cfg.Manifest = flags.Manifest
	}
	if flagSet.Changed("chunk") {
		cfg.Chunk = flags.Chunk
	}
	if flagSet.Changed("digest") {
		cfg.Digest = flags.Digest
	}
}

// pipeline is the resolved stage configuration for one run.
type pipeline struct {
	limit      bytesize.Size
	strict     bool
	decompress compress.Codec
	compress   compress.Codec
	chunk      bytesize.Size
	manifest   bool
	digest     bool
}

// buildPipeline validates a configuration into a runnable pipeline.
func buildPipeline(cfg Config) (*pipeline, error) {
	decompressCodec, err := compress.Parse(cfg.Decompress)
	if err != nil {
		return nil, fmt.Errorf("decompress codec: %w", err)
	}
	compressCodec, err := compress.Parse(cfg.Compress)
	if err != nil {
		return nil, fmt.Errorf("compress codec: %w", err)
	}
	if cfg.Manifest != "" && cfg.Chunk <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %s", cfg.Chunk)
	}
	return &pipeline{
		limit:      cfg.Limit,
		strict:     cfg.Strict,
		decompress: decompressCodec,
		compress:   compressCodec,
		chunk:      cfg.Chunk,
		manifest:   cfg.Manifest != "",
		digest:     cfg.Digest,
	}, nil
}

// outcome reports what a pipeline run produced.
type outcome struct {
	// size counts content bytes, after decompression and bounding and
	// before recompression.
	size int64

	// sum is the content digest; set when digest or manifest output
	// was requested.
	sum digest.Sum

	// manifest is set when manifest output was requested.
	manifest *digest.Manifest
}

// process copies source to sink through the configured stages. The
// digest and manifest cover the bytes between the bounding and
// compression stages.
func (p *pipeline) process(source io.Reader, sink io.Writer) (*outcome, error) {
	decoder, err := compress.NewReader(source, p.decompress)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	var content io.Reader = decoder
	if p.limit > 0 {
		if p.strict {
			// Bound one byte past the limit: inputs up to the limit
			// end on the source's own EOF, and the policy fires only
			// when a byte beyond the limit actually shows up. The
			// budget saturates when the limit is already the largest
			// representable size.
			limit := p.limit
			budget := limit + 1
			if budget < limit {
				budget = bytesize.Max
			}
			content = stream.Bound(content, budget, stream.Fail(func() error {
				return fmt.Errorf("input exceeds %s: %w", limit, stream.ErrLimitExceeded)
			}))
		} else {
			content = stream.Bound(content, p.limit, stream.Truncate())
		}
	}

	encoder, err := compress.NewWriter(sink, p.compress)
	if err != nil {
		return nil, err
	}

	result := &outcome{}
	switch {
	case p.manifest:
		manifest, err := digest.BuildManifest(io.TeeReader(content, encoder), p.chunk)
		if err != nil {
			return nil, err
		}
		result.size = manifest.Size
		result.sum = manifest.Content
		result.manifest = manifest
	case p.digest:
		hashed := digest.NewReader(content)
		if _, err := io.Copy(encoder, hashed); err != nil {
			return nil, fmt.Errorf("copying: %w", err)
		}
		result.size = hashed.BytesRead()
		result.sum = hashed.Sum()
	default:
		n, err := io.Copy(encoder, content)
		if err != nil {
			return nil, fmt.Errorf("copying: %w", err)
		}
		result.size = n
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("finishing %s output: %w", p.compress, err)
	}
	return result, nil
}

// isTerminal reports whether w is an interactive terminal. Buffers and
// pipes are not.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func printHelp(flagSet *pflag.FlagSet, out io.Writer) {
	fmt.Fprintf(out, `streamclip copies a byte stream through decompress, bound, digest,
and compress stages.

Reads stdin and writes stdout by default. The digest and the optional
chunk manifest describe the content between the bounding and
compression stages, so recompressing with a different codec does not
change them.

Usage:
  streamclip [flags]

Examples:
  # Cap a log dump at 1 GiB and compress it
  streamclip --limit 1GiB --compress zstd < dump.log > dump.log.zst

  # Recompress an LZ4 archive as zstd, recording a manifest
  streamclip --in data.lz4 --decompress lz4 --compress zstd \
      --out data.zst --manifest data.manifest

  # Print the content digest of a compressed file
  streamclip --in data.zst --decompress zstd --digest --out /dev/null

Flags:
`)
	flagSet.SetOutput(out)
	flagSet.PrintDefaults()
}

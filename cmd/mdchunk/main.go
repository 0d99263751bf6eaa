// Package main provides the mdchunk command line tool. It runs the table
// extractor and chunker over a local document and prints the result.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/mdchunk/internal/convert"
	"github.com/dgallion1/mdchunk/internal/doctree"
	"github.com/dgallion1/mdchunk/internal/parser"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "mdchunk"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	format   string
	logLevel string
	maxLines int
	pdftotxt bool
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Extract tables or heading-aware chunks from Markdown",
		Long: `mdchunk parses a Markdown document into pipe tables, or into
heading-aware chunks with link references when it has no tables.

FILE may be "-" to read Markdown from stdin. Other supported formats
(.txt, .csv, .html, .pdf, .docx) are converted to Markdown first.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.logLevel)
			switch opts.format {
			case "json", "text":
				return nil
			default:
				return fmt.Errorf("unknown format %q (json, text)", opts.format)
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "json", "Output format (json, text)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().IntVar(&opts.maxLines, "max-lines", 200000, "Reject documents with more lines")
	cmd.PersistentFlags().BoolVar(&opts.pdftotxt, "pdftotext", true, "Fall back to pdftotext for PDFs")

	cmd.AddCommand(
		parseCmd("tables", "Print the pipe tables in FILE", opts, func(text string) any {
			return map[string][]doctree.Table{"tables": parser.ParseTables(text)}
		}),
		parseCmd("chunks", "Print heading-aware chunks and references for FILE", opts, func(text string) any {
			return parser.ParseChunks(text)
		}),
		parseCmd("analyze", "Print tables, or chunks when FILE has no tables", opts, func(text string) any {
			return parser.Analyze(text)
		}),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func parseCmd(use, short string, opts *options, fn func(text string) any) *cobra.Command {
	return &cobra.Command{
		Use:   use + " FILE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDocument(cmd.InOrStdin(), args[0], opts)
			if err != nil {
				return err
			}
			slog.Debug("parsing document", "file", args[0], "lines", parser.LineCount(text))
			return write(cmd.OutOrStdout(), opts.format, fn(text))
		},
	}
}

// readDocument loads path, converting non-Markdown formats, and checks it
// against the parser input contract.
func readDocument(stdin io.Reader, path string, opts *options) (string, error) {
	var text string
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	} else {
		conv, err := convert.ForFile(path, convert.Options{PDFFallbackPdftotext: opts.pdftotxt})
		if err != nil {
			return "", err
		}
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		text, err = conv.Convert(f, filepath.Base(path))
		if err != nil {
			return "", fmt.Errorf("convert %s: %w", path, err)
		}
	}

	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%s is not valid UTF-8", path)
	}
	if n := parser.LineCount(text); n > opts.maxLines {
		return "", fmt.Errorf("%s has %d lines, max %d", path, n, opts.maxLines)
	}
	return text, nil
}

func setupLogging(logLevel string) {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

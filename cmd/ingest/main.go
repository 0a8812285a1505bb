package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/ingest"
)

func main() {
	config.Init()
	cfg := config.Load()

	input := flag.String("input", "", "Path to the question file (.csv, .xls, .xlsx)")
	output := flag.String("output", "", "Path to the JSON result (defaults to stdout)")
	separator := flag.String("separator", string(cfg.CSVSeparator), "Field separator for CSV files")
	maxSize := flag.Int64("max-size", cfg.MaxFileSize, "Maximum accepted file size in bytes")
	verbose := flag.Bool("verbose", false, "Print a summary to stderr")

	flag.Parse()

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required\n")
		fmt.Fprintf(os.Stderr, "Usage: ingest -input <file> [-output <json-file>] [-separator ;] [-verbose]\n")
		os.Exit(1)
	}

	sep, _ := utf8.DecodeRuneInString(*separator)
	if sep == utf8.RuneError {
		sep = 0
	}

	src, err := ingest.FromPath(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read input file: %v\n", err)
		os.Exit(1)
	}

	ingestor := ingest.NewIngestor(ingest.Config{MaxFileSize: *maxSize, Separator: sep})
	result := ingestor.Ingest(context.Background(), src)

	if *verbose {
		fmt.Fprintf(os.Stderr, "File: %s\n", src.Name())
		fmt.Fprintf(os.Stderr, "Questions: %d\n", len(result.Questions))
		fmt.Fprintf(os.Stderr, "Format: %s\n", result.Format)
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
	}

	if err := writeResult(result, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing result: %v\n", err)
		os.Exit(1)
	}

	if !result.Success {
		os.Exit(2)
	}
}

func writeResult(result ingest.FileUploadResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if path == "" {
		_, err = fmt.Println(string(data))
		return err
	}
	return os.WriteFile(path, data, 0644)
}

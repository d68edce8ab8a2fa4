package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"

	"ddbin-editor/ddbin"
	"ddbin-editor/ddbin/dxml"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
)

type BatchResult struct {
	Source      string
	Destination string
	Note        string
	Err         error
}

// RunBatch applies job to every path with at most workers jobs running at once. Results keep
// the order of paths.
func RunBatch(paths []string, workers int, job func(path string) BatchResult) []BatchResult {
	if workers < 1 {
		workers = 1
	}
	results := make([]BatchResult, len(paths))
	mu := sync.Mutex{}
	swg := sizedwaitgroup.New(workers)
	for i, path := range paths {
		swg.Add()
		go func(i int, path string) {
			defer swg.Done()
			result := job(path)
			result.Source = path
			mu.Lock()
			results[i] = result
			mu.Unlock()
		}(i, path)
	}
	swg.Wait()
	return results
}

// ReportBatch prints one line per file and returns an error when any file failed.
func ReportBatch(w io.Writer, verb string, results []BatchResult) error {
	p := newPrinter()
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed += 1
			p.Fprintf(w, "FAIL %s: %v\n", result.Source, result.Err)
			continue
		}
		line := "ok   " + result.Source + " -> " + result.Destination
		if result.Note != "" {
			line += " (" + result.Note + ")"
		}
		p.Fprintf(w, "%s\n", line)
	}
	p.Fprintf(w, "%s %d of %d files\n", verb, len(results)-failed, len(results))
	if failed > 0 {
		return errors.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func StartExporting(codec *ddbin.Codec, cmd ExportCmd, stdout io.Writer) error {
	results := RunBatch(
		cmd.Paths,
		cmd.Workers,
		func(path string) BatchResult {
			destination := DestinationPath(path, cmd.Out, ".xml", cmd.Gzip)
			file, err := codec.ReadFile(path)
			if err != nil {
				return BatchResult{Err: err}
			}
			write := func(w io.Writer) error {
				return dxml.Export(w, file.ListValues())
			}
			if cmd.List != "" {
				list, ok := file.List(cmd.List)
				if !ok {
					return BatchResult{Err: errors.Errorf(`list "%s" not found`, cmd.List)}
				}
				write = func(w io.Writer) error {
					return dxml.ExportList(w, list)
				}
			}
			err = WriteOutput(destination, cmd.Force, cmd.Gzip, write)
			return BatchResult{Destination: destination, Err: err}
		},
	)
	return ReportBatch(stdout, "Exported", results)
}

func StartDumping(codec *ddbin.Codec, cmd JSONCmd, stdout io.Writer) error {
	if cmd.Schema {
		return WriteDumpSchema(stdout)
	}
	if len(cmd.Paths) == 0 {
		return errors.New("no files given")
	}
	results := RunBatch(
		cmd.Paths,
		cmd.Workers,
		func(path string) BatchResult {
			destination := DestinationPath(path, cmd.Out, ".json", cmd.Gzip)
			file, err := codec.ReadFile(path)
			if err != nil {
				return BatchResult{Err: err}
			}
			err = WriteOutput(
				destination, cmd.Force, cmd.Gzip,
				func(w io.Writer) error {
					return WriteDump(w, CreateDump(file))
				},
			)
			return BatchResult{Destination: destination, Err: err}
		},
	)
	return ReportBatch(stdout, "Dumped", results)
}

// StartConverting decodes and re-encodes every file, reporting whether the output is byte
// identical to the input.
func StartConverting(codec *ddbin.Codec, cmd ConvertCmd, stdout io.Writer) error {
	results := RunBatch(
		cmd.Paths,
		cmd.Workers,
		func(path string) BatchResult {
			destination := DestinationPath(path, cmd.Out, ".data", false)
			inPlace := destination == filepath.Clean(path)
			if inPlace && !cmd.Force {
				return BatchResult{Err: errors.New("destination is the source file, use --out or --force")}
			}
			file, err := codec.ReadFile(path)
			if err != nil {
				return BatchResult{Err: err}
			}
			encoded, err := codec.Encode(file)
			if err != nil {
				return BatchResult{Err: err}
			}
			source, err := os.ReadFile(path)
			if err != nil {
				return BatchResult{Err: errors.Wrap(err, "StartConverting error")}
			}
			note := "identical"
			if !bytes.Equal(source, encoded) {
				note = newPrinter().Sprintf("changed, %d bytes -> %d bytes", len(source), len(encoded))
			}
			if !inPlace && CheckExistence(destination) && !cmd.Force {
				return BatchResult{Err: errors.Errorf(`destination "%s" exists, use --force to overwrite it`, destination)}
			}
			if err := ddbin.WriteFileAtomic(destination, encoded); err != nil {
				return BatchResult{Err: err}
			}
			return BatchResult{Destination: destination, Note: note}
		},
	)
	return ReportBatch(stdout, "Converted", results)
}

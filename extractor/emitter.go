package extractor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/litedoc/litedoc/config"
	"github.com/litedoc/litedoc/extractor/models"
	"github.com/litedoc/litedoc/utils"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// Files over this size are inert input and skipped.
const maxSourceFileSize = 1024 * 1024

// sourceFile is one enumerated input file, read fully before the worker
// pool starts so the symbol prescan can run ahead of any processing.
type sourceFile struct {
	relPath string
	text    string
	readErr error
}

// Emitter enumerates the input tree, runs the per-file pipeline over a
// bounded worker pool, and mirrors documents under the output root.
// Pre-existing output files are overwritten unconditionally: the tool
// fully regenerates its output tree on every run.
type Emitter struct {
	cfg *config.Config
	ex  *Extractor

	// DryRun validates and assembles without touching the output tree.
	DryRun bool
}

func NewEmitter(cfg *config.Config) *Emitter {
	return &Emitter{cfg: cfg, ex: NewExtractor(cfg)}
}

// Run executes one batch over the input root. Configuration errors are
// returned before any per-file work starts; per-file failures are
// isolated into the report and never abort the batch.
func (em *Emitter) Run(ctx context.Context) (*models.RunReport, error) {
	if err := em.cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := em.enumerate()
	if err != nil {
		return nil, err
	}

	if err := em.prescanSymbols(files); err != nil {
		return nil, err
	}

	report := &models.RunReport{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(em.cfg.Workers)
	for _, f := range files {
		f := f
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return em.processOne(f, report)
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

// processOne runs the pipeline for a single file and records its
// outcome. Only configuration errors propagate as errors.
func (em *Emitter) processOne(f sourceFile, report *models.RunReport) error {
	if f.readErr != nil {
		report.Add(models.FileReport{
			RelativePath: f.relPath,
			Status:       models.StatusError,
			Err:          &models.StructuralError{Path: f.relPath, Reason: f.readErr.Error()},
		})
		return nil
	}

	doc, warnings, err := em.ex.Process(f.relPath, f.text)
	if err != nil {
		if cfgErr, ok := err.(*models.ConfigError); ok {
			return cfgErr
		}
		structErr, ok := err.(*models.StructuralError)
		if !ok {
			structErr = &models.StructuralError{Path: f.relPath, Reason: err.Error()}
		}
		report.Add(models.FileReport{
			RelativePath: f.relPath,
			Status:       models.StatusError,
			Err:          structErr,
			Warnings:     warnings,
		})
		return nil
	}

	if doc == nil {
		report.Add(models.FileReport{
			RelativePath: f.relPath,
			Status:       models.StatusNoDocs,
			Warnings:     warnings,
		})
		return nil
	}

	outPath := em.outputPath(f.relPath)
	content := doc.Render(em.cfg.Format.Fence)
	if !em.DryRun {
		if err := em.write(outPath, content); err != nil {
			report.Add(models.FileReport{
				RelativePath: f.relPath,
				Status:       models.StatusError,
				Err:          &models.StructuralError{Path: f.relPath, Reason: err.Error()},
				Warnings:     warnings,
			})
			return nil
		}
	}

	report.Add(models.FileReport{
		RelativePath: f.relPath,
		Status:       models.StatusWritten,
		Warnings:     warnings,
		OutputPath:   outPath,
		Digest:       xxh3.HashString(content),
	})
	return nil
}

// outputPath mirrors the source file's relative path under the output
// root, swapping the extension for the documentation format's.
func (em *Emitter) outputPath(relPath string) string {
	ext := filepath.Ext(relPath)
	rel := strings.TrimSuffix(relPath, ext) + em.cfg.Format.Extension
	return filepath.Join(em.cfg.OutputRoot, rel)
}

func (em *Emitter) write(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// enumerate walks the input root and reads every qualifying source file.
// Individual read failures are carried into the file list so they are
// reported per file, not fatally.
func (em *Emitter) enumerate() ([]sourceFile, error) {
	ignorePatterns, err := utils.GetIgnorePatterns(em.cfg.InputRoot)
	if err != nil {
		return nil, models.ConfigErrorf("%v", err)
	}

	outAbs, _ := filepath.Abs(em.cfg.OutputRoot)

	var files []sourceFile
	err = filepath.WalkDir(em.cfg.InputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(em.cfg.InputRoot, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			// Never descend into the output tree or ignored dirs.
			if abs, _ := filepath.Abs(path); abs == outAbs {
				return filepath.SkipDir
			}
			if relPath != "." && utils.IsDefaultIgnored(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if utils.IsDefaultIgnored(relPath) || utils.IsIgnored(relPath, ignorePatterns) {
			return nil
		}
		if !utils.HasSourceExtension(relPath, em.cfg.SourceExtensions) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			files = append(files, sourceFile{relPath: relPath, readErr: err})
			return nil
		}
		if info.Size() > maxSourceFileSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			files = append(files, sourceFile{relPath: relPath, readErr: err})
			return nil
		}
		files = append(files, sourceFile{relPath: relPath, text: string(content)})
		return nil
	})
	if err != nil {
		return nil, models.ConfigErrorf("input root %q is not readable: %v", em.cfg.InputRoot, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].relPath < files[j].relPath })
	return files, nil
}

// prescanSymbols collects every condition symbol referenced by any
// directive in the input set and rejects the run before processing when
// one is absent from the configured symbol table.
func (em *Emitter) prescanSymbols(files []sourceFile) error {
	unknown := map[string]string{} // symbol -> first referencing file
	for _, f := range files {
		if f.readErr != nil {
			continue
		}
		for _, line := range strings.Split(f.text, "\n") {
			m := directiveRegex.FindStringSubmatch(line)
			if m == nil || m[1] != "if" {
				continue
			}
			cond := conditionRegex.FindStringSubmatch(strings.TrimSpace(m[2]))
			if cond == nil {
				// Malformed conditions surface as structural
				// errors during processing.
				continue
			}
			sym := cond[2]
			if _, ok := em.cfg.Symbols[sym]; !ok {
				if _, seen := unknown[sym]; !seen {
					unknown[sym] = f.relPath
				}
			}
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	syms := make([]string, 0, len(unknown))
	for s := range unknown {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	return models.ConfigErrorf("condition symbols not defined in the symbol table: %s (first seen in %s)",
		strings.Join(syms, ", "), unknown[syms[0]])
}

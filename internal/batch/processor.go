package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"sb6-assets/internal/gpu"
	"sb6-assets/internal/imageutil"
	"sb6-assets/internal/ktx"
	"sb6-assets/internal/logging"
	"sb6-assets/internal/sbm"
)

// Config holds the settings shared by every worker of a run.
type Config struct {
	AssetDir   string
	OutputDir  string
	Workers    int
	KTX        ktx.Options
	Dump       bool   // write decoded KTX levels as images
	DumpFormat string // "webp" or "png"
	Progress   time.Duration
}

// Result holds the outcome of checking one file.
type Result struct {
	Path    string   `json:"path"`
	Kind    string   `json:"kind"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Images  []string `json:"images,omitempty"`
	Ops     int      `json:"device_calls"`
}

// Collect lists the .sbm and .ktx files below dir, sorted, relative to dir.
func Collect(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".sbm", ".ktx":
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Run checks all files using a worker pool. Each worker loads into its own
// gpu.Recorder.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64
	workers := max(cfg.Workers, 1)

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						fmt.Printf("  [%d/%d] %.1f files/sec\n", p, total, float64(p)/elapsed)
					}
				}
			}
		}()
	}

	fileChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := gpu.NewRecorder()
			for idx := range fileChan {
				rec.Reset()
				results[idx] = processFile(cfg, rec, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, rec *gpu.Recorder, rel string) Result {
	res := Result{Path: filepath.ToSlash(rel)}
	path := filepath.Join(cfg.AssetDir, rel)

	var err error
	switch strings.ToLower(filepath.Ext(rel)) {
	case ".sbm":
		res.Kind = "sbm"
		err = checkMesh(rec, path, &res)
	case ".ktx":
		res.Kind = "ktx"
		err = checkTexture(cfg, rec, path, rel, &res)
	default:
		err = fmt.Errorf("unknown asset type %s", filepath.Ext(rel))
	}
	res.Ops = len(rec.Ops)
	if err != nil {
		logging.Logger().Warn("batch: asset failed", "path", rel, "err", err)
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}

func checkMesh(rec *gpu.Recorder, path string, res *Result) error {
	o, err := sbm.Load(rec, path)
	if err != nil {
		return err
	}
	for i := 0; i < o.SubObjectCount(); i++ {
		if err := o.RenderSubObject(i, 1, 0); err != nil {
			return err
		}
	}
	res.Summary = fmt.Sprintf("%d vertices, %d sub-objects, %d bound attributes, indexed=%v",
		o.VertexCount(), o.SubObjectCount(), len(o.Bindings()), o.Indexed())
	return nil
}

func checkTexture(cfg Config, rec *gpu.Recorder, path, rel string, res *Result) error {
	f, err := ktx.Read(path, cfg.KTX)
	if err != nil {
		return err
	}
	tex, err := f.Upload(rec, 0)
	if err != nil {
		return err
	}
	res.Summary = fmt.Sprintf("%v %v %dx%dx%d, %d levels (%d in file), %d bytes uploaded",
		tex.Target, tex.Format, tex.Width, tex.Height, tex.Depth, tex.Levels, len(f.Levels), rec.UploadedBytes())

	if !cfg.Dump {
		return nil
	}
	if f.Format.Compressed() {
		logging.Logger().Info("batch: not dumping compressed texture", "path", rel, "format", f.Format)
		return nil
	}
	base := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
	for level := range f.Levels {
		for slice := 0; slice < f.Slices(level); slice++ {
			img, err := f.LevelImage(level, slice)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("%s/%d_%d.%s", base, level, slice, cfg.DumpFormat)
			if err := imageutil.Save(filepath.Join(cfg.OutputDir, filepath.FromSlash(name)), img, cfg.DumpFormat); err != nil {
				return err
			}
			res.Images = append(res.Images, name)
		}
	}
	return nil
}

// Failed returns the results that did not succeed.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}

// EnsureOutput creates the output directory.
func EnsureOutput(cfg Config) error {
	return os.MkdirAll(cfg.OutputDir, 0755)
}

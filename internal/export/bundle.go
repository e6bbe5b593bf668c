// Package export writes analysis bundles: the report plus the facts
// snapshot it was derived from, archived as a single zstd-compressed tar
// for sharing or long-term storage.
package export

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"repoaudit/internal/facts"
	"repoaudit/internal/report"
)

// Bundle writes report.json and facts.json into a zstd-compressed tar at
// path. The facts snapshot makes the analysis reproducible later.
func Bundle(r *report.Report, f *facts.Facts, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle file: %w", err)
	}
	defer out.Close()

	if err := writeBundle(r, f, out); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func writeBundle(r *report.Report, f *facts.Facts, out io.Writer) error {
	zw, err := zstd.NewWriter(out)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	tw := tar.NewWriter(zw)

	entries := []struct {
		name string
		data interface{}
	}{
		{"report.json", r},
		{"facts.json", f},
	}

	for _, e := range entries {
		data, err := json.MarshalIndent(e.data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", e.name, err)
		}
		hdr := &tar.Header{
			Name:    e.name,
			Mode:    0644,
			Size:    int64(len(data)),
			ModTime: r.AnalyzedAt,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write tar header for %s: %w", e.name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finalize tar: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize zstd stream: %w", err)
	}
	return nil
}

// ReadBundle loads the report back out of a bundle written by Bundle.
func ReadBundle(path string) (*report.Report, *facts.Facts, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open bundle: %w", err)
	}
	defer in.Close()

	zr, err := zstd.NewReader(in)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open zstd stream: %w", err)
	}
	defer zr.Close()

	var r *report.Report
	var f *facts.Facts

	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read bundle entry: %w", err)
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", hdr.Name, err)
		}

		switch hdr.Name {
		case "report.json":
			r = &report.Report{}
			if err := json.Unmarshal(data, r); err != nil {
				return nil, nil, fmt.Errorf("failed to parse report.json: %w", err)
			}
		case "facts.json":
			f = &facts.Facts{}
			if err := json.Unmarshal(data, f); err != nil {
				return nil, nil, fmt.Errorf("failed to parse facts.json: %w", err)
			}
		}
	}

	if r == nil {
		return nil, nil, fmt.Errorf("bundle contains no report.json")
	}
	return r, f, nil
}

// DefaultBundleName derives a bundle file name from the report.
func DefaultBundleName(r *report.Report) string {
	repo := r.Repo
	if repo == "" {
		repo = "analysis"
	}
	return fmt.Sprintf("%s-%s.repoaudit.tar.zst", repo, r.AnalyzedAt.Format("20060102-150405"))
}

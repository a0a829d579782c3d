package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/victorswan/gompsched/internal/utils"
)

// ExportWorkload writes a generated workload sample to path as a
// two-column CSV (sample index, value), then archives a copy alongside it at path+".bak"
// so a run's input sample stays reproducible even if a later run
// overwrites path.
func ExportWorkload(path string, sample []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bench: create workload file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			utils.Debug("bench: close workload file failed: %v", cerr)
		}
	}()

	w := csv.NewWriter(f)
	for i, v := range sample {
		if err := w.Write([]string{strconv.Itoa(i), strconv.FormatFloat(v, 'f', -1, 64)}); err != nil {
			return fmt.Errorf("bench: write workload row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("bench: flush workload file: %w", err)
	}

	return copyFile(path, path+".bak")
}

// copyFile copies src to dst, syncing dst before returning so the
// archived copy survives a crash immediately after a run completes.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			utils.Debug("bench: close archive source failed: %v", cerr)
		}
	}()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			utils.Debug("bench: close archive dest failed: %v", cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

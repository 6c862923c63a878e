package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogRotator is an io.Writer appending to baseDir/baseName and rotating the
// file once it grows past maxSize. Rotated files are timestamped, optionally
// gzipped, and pruned by age and count.
type LogRotator struct {
	mu          sync.Mutex
	baseDir     string
	baseName    string
	maxSize     int64 // bytes
	maxAge      time.Duration
	maxBackups  int
	compress    bool
	currentFile *os.File
	currentSize int64
}

// RotatorOptions configures a LogRotator.
type RotatorOptions struct {
	Dir        string
	Name       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewLogRotator opens (or creates) the current log file described by opts.
func NewLogRotator(opts RotatorOptions) (*LogRotator, error) {
	if opts.Name == "" {
		opts.Name = "floatdock.log"
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &LogRotator{
		baseDir:    opts.Dir,
		baseName:   opts.Name,
		maxSize:    int64(opts.MaxSizeMB) * 1024 * 1024,
		maxAge:     time.Duration(opts.MaxAgeDays) * 24 * time.Hour,
		maxBackups: opts.MaxBackups,
		compress:   opts.Compress,
	}

	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the path of the file currently written to.
func (r *LogRotator) Path() string {
	return filepath.Join(r.baseDir, r.baseName)
}

func (r *LogRotator) openCurrentFile() error {
	logPath := r.Path()

	r.currentSize = 0
	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.currentSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			return fmt.Errorf("failed to close current log file: %w", err)
		}
		r.currentFile = nil
	}

	backupPath := filepath.Join(r.baseDir, fmt.Sprintf("%s.%s", r.baseName, time.Now().Format("2006-01-02-15-04-05.000")))
	if err := os.Rename(r.Path(), backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.compress {
		// A failed compression keeps the plain backup.
		if err := compressFile(backupPath); err == nil {
			_ = os.Remove(backupPath)
		}
	}

	r.cleanup()
	return r.openCurrentFile()
}

func compressFile(filePath string) (err error) {
	in, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(filePath + ".gz")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	gz := gzip.NewWriter(out)
	if _, err = io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

// Backups returns the rotated files, oldest first.
func (r *LogRotator) Backups() []string {
	infos := r.backupInfos()
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names
}

func (r *LogRotator) backupInfos() []os.FileInfo {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil
	}

	var infos []os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), r.baseName+".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].ModTime().Equal(infos[j].ModTime()) {
			return infos[i].Name() < infos[j].Name()
		}
		return infos[i].ModTime().Before(infos[j].ModTime())
	})
	return infos
}

func (r *LogRotator) cleanup() {
	now := time.Now()
	var kept []os.FileInfo
	for _, info := range r.backupInfos() {
		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			_ = os.Remove(filepath.Join(r.baseDir, info.Name()))
			continue
		}
		kept = append(kept, info)
	}

	if r.maxBackups > 0 && len(kept) > r.maxBackups {
		for _, info := range kept[:len(kept)-r.maxBackups] {
			_ = os.Remove(filepath.Join(r.baseDir, info.Name()))
		}
	}
}

// Close closes the current log file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}

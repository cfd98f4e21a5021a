// Package backup provides tar.gz-based backup and restore for the kartstats
// database and config file.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// DatabaseFile is the default database file name inside a data directory.
const DatabaseFile = "kartstats.db"

// ErrExists is returned by Restore when a target file exists and force is off.
var ErrExists = errors.New("file already exists")

// Backup creates a tar.gz archive containing the SQLite database and an
// optional config file. It checkpoints the WAL before copying the database.
func Backup(_ context.Context, dbPath, configPath, outputPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("database file not found: %w", err)
	}

	if err := checkpointWAL(dbPath); err != nil {
		return fmt.Errorf("WAL checkpoint failed: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	gw := gzip.NewWriter(outFile)
	tw := tar.NewWriter(gw)

	if err := addFileToTar(tw, dbPath, filepath.Base(dbPath)); err != nil {
		return fmt.Errorf("adding database to archive: %w", err)
	}

	// A missing config file is skipped.
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := addFileToTar(tw, configPath, filepath.Base(configPath)); err != nil {
				return fmt.Errorf("adding config to archive: %w", err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("closing gzip stream: %w", err)
	}
	return outFile.Close()
}

// Restore extracts a Backup archive into dataDir. Existing files are only
// overwritten when force is set. Entries are flattened to their base name.
func Restore(ctx context.Context, archivePath, dataDir string, force bool) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading gzip stream: %w", err)
	}
	defer gr.Close()

	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tr := tar.NewReader(gr)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := filepath.Base(hdr.Name)
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("invalid archive entry %q", hdr.Name)
		}
		target := filepath.Join(dataDir, name)
		if err := extractFile(tr, target, force); err != nil {
			return fmt.Errorf("restoring %s: %w", name, err)
		}
	}
}

func extractFile(r io.Reader, target string, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	out, err := os.OpenFile(target, flags, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s (use -force to overwrite)", ErrExists, target)
		}
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// checkpointWAL opens the database, runs a TRUNCATE checkpoint to flush the
// WAL, and closes the connection.
func checkpointWAL(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return err
}

// addFileToTar adds a single file to the tar archive under the given name.
func addFileToTar(tw *tar.Writer, filePath, archiveName string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = archiveName

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	_, err = io.Copy(tw, f)
	return err
}

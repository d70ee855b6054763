package app

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/Dieterbe/fswalk"
	"github.com/src-lua/cptools/pkg/lineprint"
)

// DirPrint groups the hashed source files of one directory.
type DirPrint struct {
	Path  string
	Files []lineprint.FilePrint
	Dirs  []DirPrint
}

// sourceExts are the filename extensions that get hashed during a walk.
var sourceExts = map[string]bool{
	".cpp": true,
	".cc":  true,
	".cxx": true,
	".h":   true,
	".hpp": true,
}

func walkZipReader(fd fs.File, path string, fpr lineprint.FingerPrinter, log io.Writer) (DirPrint, map[string]lineprint.FilePrint, error) {

	// fd is an io.Reader, but zip needs an io.ReaderAt; so "convert" it
	var buf bytes.Buffer
	size, err := io.Copy(&buf, fd)
	if err != nil {
		return DirPrint{}, nil, err
	}

	zipfs, err := zip.NewReader(bytes.NewReader(buf.Bytes()), size)
	if err != nil {
		return DirPrint{}, nil, err
	}

	return WalkZip(zipfs, path, fpr, log)
}

func WalkZip(f fs.FS, walkPath string, fpr lineprint.FingerPrinter, log io.Writer) (DirPrint, map[string]lineprint.FilePrint, error) {
	return Walk(f, "WalkZIP: ", walkPath, fpr, log, true)
}

func WalkFS(f fs.FS, walkPath string, fpr lineprint.FingerPrinter, log io.Writer) (DirPrint, map[string]lineprint.FilePrint, error) {
	return Walk(f, "WalkFS : ", walkPath, fpr, log, false)
}

// Walk walks the filesystem rooted at walkPath (absolute path to a directory
// or zip file) and hashes every source file encountered, descending into zip
// files along the way. It returns the root DirPrint and all individual
// FilePrints keyed by path within walkPath (which is implicit).
// crit means whether any error should fail the entire walk at the root level,
// or only skip the directory where the error occurs. Fingerprint pipeline
// failures always abort: a partially hashed tree would silently skew the
// similarity ranking.
func Walk(f fs.FS, prefix, walkPath string, fpr lineprint.FingerPrinter, log io.Writer, crit bool) (DirPrint, map[string]lineprint.FilePrint, error) {
	if !strings.HasPrefix(walkPath, "/") {
		panic(fmt.Sprintf("expected an absolute path. not %q - may not be strictly necessary, but it makes output clearer. this should never happen", walkPath))
	}
	logPrefix := prefix + walkPath
	fmt.Fprintln(log, "INF", logPrefix+": START!!")
	var dpStack []DirPrint                           // dirprints in progress during walking.
	var fpAll = make(map[string]lineprint.FilePrint) // to be returned

	// Note that WalkDir first processes a directory, then its children

	walkDirFn := func(p string, d fs.DirEntry, err error) error {

		logPrefix := logPrefix + ": WalkDir " + p

		// handleErr logs the error, and for a critical error, reports the failure, otherwise skips
		handleErr := func(msg string, err error) error {
			if !crit {
				fmt.Fprintln(log, "WARN", logPrefix, msg, err, "..skipping dir")
				return fs.SkipDir
			}
			fmt.Fprintln(log, "ERR", logPrefix, msg, err, "..aborting")
			return err
		}

		if err != nil {
			return handleErr("received Stat(root) or ReadDir(dir) error", err)
		}

		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(log, "WARN", logPrefix, "file disappeared while walking. error:", err, "..skipping this file")
				return nil
			}
			return handleErr("d.Info() error", err)
		}

		if d.Name() == "__MACOSX" && info.IsDir() {
			fmt.Fprintln(log, "INF", logPrefix, "don't descend into this one, it's not real important data")
			return fs.SkipDir
		}

		if info.IsDir() {
			// entering a new directory. start our DirPrint to capture FilePrints in this directory
			dpStack = append(dpStack, DirPrint{Path: filepath.Base(p)})
			fmt.Fprintln(log, "INF", logPrefix, "PUSH: this is our current directory to add FilePrints into")
			return nil
		}

		ext := filepath.Ext(p)
		switch {
		case ext == ".zip":
			fmt.Fprintln(log, "INF", logPrefix, "hashing as a zip directory...")
			fd, err := f.Open(p)
			if err != nil {
				return handleErr("f.Open() error", err)
			}
			path := filepath.Join(walkPath, p)
			dp, all, err := walkZipReader(fd, path, fpr, log)
			if err != nil {
				return handleErr("walkZip returned error:", err)
			}
			fd.Close() // ignore error. AFAIK this is fine after read-only access
			for k, v := range all {
				// paths of returned fileprints are relative to the zip root;
				// since we walked the zip within *our* walk, prepend the zip's
				// own path within our walkPath
				v.Path = filepath.Join(p, k)
				fpAll[v.Path] = v
			}
			dp.Path = filepath.Base(p)
			dpStack[len(dpStack)-1].Dirs = append(dpStack[len(dpStack)-1].Dirs, dp)
		case sourceExts[ext]:
			fmt.Fprintln(log, "INF", logPrefix, "hashing as a source file...")
			fd, err := f.Open(p)
			if err != nil {
				return handleErr("f.Open() error", err)
			}
			lines, err := lineprint.HashLines(fd, fpr)
			if err != nil {
				fd.Close()
				var fpe lineprint.FingerprintError
				if errors.As(err, &fpe) {
					fmt.Fprintln(log, "ERR", logPrefix, "fingerprint pipeline failed:", err, "..aborting")
					return err
				}
				return handleErr("HashLines (io.Read) returned error:", err)
			}
			err = fd.Close()
			if err != nil {
				fmt.Fprintln(log, "WARN", logPrefix, "fd.Close() returned error:", err, "..afaik these are harmless after read-only access. so ignoring")
			}
			pr := lineprint.FilePrint{Path: p, Lines: lines}
			dpStack[len(dpStack)-1].Files = append(dpStack[len(dpStack)-1].Files, pr)
			fpAll[p] = pr
		default:
			fmt.Fprintln(log, "INF", logPrefix, "not a source file, skipping")
		}

		return nil
	}

	doneDirFn := func(p string, d fs.DirEntry, err error) error {
		logPrefix := logPrefix + ": DoneDir " + p

		if err != nil {
			// walking this dir was aborted
			fmt.Fprintln(log, "INF", logPrefix, "POP: discarding directory due to error")
			dpStack = dpStack[:len(dpStack)-1]
			return nil
		}

		// we are done with a directory, add it to its parent
		// unless this was the root directory, which has no parent and will be the ultimate DirPrint to return below
		if len(dpStack) > 1 {
			fmt.Fprintln(log, "INF", logPrefix, "POP: adding this dir to its parent")
			popped := dpStack[len(dpStack)-1]
			dpStack = dpStack[:len(dpStack)-1]
			dpStack[len(dpStack)-1].Dirs = append(dpStack[len(dpStack)-1].Dirs, popped)
			return nil
		}
		fmt.Fprintln(log, "INF", logPrefix, "POP: this dir is the root and is complete")
		return nil
	}

	err := fswalk.WalkDir(f, ".", walkDirFn, doneDirFn)
	if err != nil {
		return DirPrint{}, nil, err
	}
	if len(dpStack) != 1 {
		panic(fmt.Sprintf("unexpected number of dirPrints %d: %v", len(dpStack), dpStack))
	}
	return dpStack[0], fpAll, nil
}

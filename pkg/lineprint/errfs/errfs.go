// Package errfs wraps an fs.FS so that chosen paths fail to open or read,
// useful for testing walk error handling.
package errfs

import "io/fs"

// Errs configures the failures for one path.
type Errs struct {
	Open error
	Read error
}

type FS struct {
	fs   fs.FS
	errs map[string]Errs
}

var _ fs.FS = FS{}

func New(f fs.FS, errs map[string]Errs) FS {
	return FS{fs: f, errs: errs}
}

func (e FS) Open(name string) (fs.File, error) {
	errs := e.errs[name]
	if errs.Open != nil {
		return nil, errs.Open
	}
	f, err := e.fs.Open(name)
	if err != nil || errs.Read == nil {
		return f, err
	}
	return errFile{f: f, errRead: errs.Read}, nil
}

type errFile struct {
	f       fs.File
	errRead error
}

func (f errFile) Stat() (fs.FileInfo, error) { return f.f.Stat() }
func (f errFile) Close() error               { return f.f.Close() }

func (f errFile) Read(b []byte) (int, error) {
	return 0, f.errRead
}

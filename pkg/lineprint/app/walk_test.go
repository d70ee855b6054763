package app

import (
	"errors"
	"io"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/src-lua/cptools/pkg/lineprint"
	"github.com/src-lua/cptools/pkg/lineprint/errfs"
	"github.com/src-lua/cptools/pkg/lineprint/mkzip"
)

// TestWalk checks that a walk over an in-memory FS hashes exactly the source
// files and aggregates them into the expected DirPrint tree.
func TestWalk(t *testing.T) {
	root, all, err := WalkFS(lineprint.DataTree, "/test/in-memory", lineprint.Md5FingerPrint, io.Discard)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	wantRoot := DirPrint{
		Path:  ".",
		Files: []lineprint.FilePrint{lineprint.DataMainPrint},
		Dirs: []DirPrint{
			{
				Path:  "lib",
				Files: []lineprint.FilePrint{lineprint.DataUtilPrint},
			},
		},
	}
	if diff := cmp.Diff(wantRoot, root); diff != "" {
		t.Errorf("Walk() root mismatch (-want +got):\n%s", diff)
	}

	wantAll := map[string]lineprint.FilePrint{
		"main.cpp":   lineprint.DataMainPrint,
		"lib/util.h": lineprint.DataUtilPrint,
	}
	if diff := cmp.Diff(wantAll, all); diff != "" {
		t.Errorf("Walk() map mismatch (-want +got):\n%s", diff)
	}
}

// TestWalkZip checks that zip files encountered during a walk are descended
// into in memory, with the zip's path prefixed onto its members.
func TestWalkZip(t *testing.T) {
	data := fstest.MapFS{
		"bundle.zip": {Data: mkzip.MustDo([]mkzip.Entry{
			{Path: "z.cpp", Body: lineprint.DataMainCpp},
		})},
	}

	root, all, err := WalkFS(data, "/test/in-memory", lineprint.Md5FingerPrint, io.Discard)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	wantRoot := DirPrint{
		Path: ".",
		Dirs: []DirPrint{
			{
				Path: "bundle.zip",
				Files: []lineprint.FilePrint{
					{Path: "z.cpp", Lines: lineprint.DataMainPrint.Lines},
				},
			},
		},
	}
	if diff := cmp.Diff(wantRoot, root); diff != "" {
		t.Errorf("Walk() root mismatch (-want +got):\n%s", diff)
	}

	want := lineprint.FilePrint{Path: "bundle.zip/z.cpp", Lines: lineprint.DataMainPrint.Lines}
	if diff := cmp.Diff(want, all["bundle.zip/z.cpp"]); diff != "" {
		t.Errorf("zip member print mismatch (-want +got):\n%s", diff)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 print, got %d: %v", len(all), all)
	}
}

// TestWalkSkipsFailingDir checks the lenient mode: an unreadable file skips
// its directory and the rest of the walk carries on.
func TestWalkSkipsFailingDir(t *testing.T) {
	boom := errors.New("boom")
	f := errfs.New(lineprint.DataTree, map[string]errfs.Errs{
		"lib/util.h": {Open: boom},
	})

	_, all, err := WalkFS(f, "/test/in-memory", lineprint.Md5FingerPrint, io.Discard)
	if err != nil {
		t.Fatalf("Walk() error = %v, want nil in lenient mode", err)
	}
	if _, ok := all["lib/util.h"]; ok {
		t.Error("unreadable file should not have been hashed")
	}
	if diff := cmp.Diff(lineprint.DataMainPrint, all["main.cpp"]); diff != "" {
		t.Errorf("main.cpp print mismatch (-want +got):\n%s", diff)
	}
}

// TestWalkCritAborts checks the critical mode used for zip walks: the first
// error fails the whole walk.
func TestWalkCritAborts(t *testing.T) {
	boom := errors.New("boom")
	f := errfs.New(lineprint.DataTree, map[string]errfs.Errs{
		"main.cpp": {Read: boom},
	})

	_, _, err := Walk(f, "test: ", "/test/in-memory", lineprint.Md5FingerPrint, io.Discard, true)
	if !errors.Is(err, boom) {
		t.Errorf("Walk() error = %v, want the injected read error", err)
	}
}

// TestWalkFingerprintFailureAborts checks that a pipeline failure aborts even
// the lenient walk: one bad fingerprint must not silently skew the results.
func TestWalkFingerprintFailureAborts(t *testing.T) {
	boom := errors.New("normalizer broke")
	fpr := lineprint.NewFingerPrinter(
		func(string) (string, error) { return "", boom },
		lineprint.Md5Digest, 3)

	_, _, err := WalkFS(lineprint.DataTree, "/test/in-memory", fpr, io.Discard)
	if !errors.Is(err, boom) {
		t.Errorf("Walk() error = %v, want the pipeline failure", err)
	}
	var fpe lineprint.FingerprintError
	if !errors.As(err, &fpe) {
		t.Errorf("Walk() error = %v, want a FingerprintError", err)
	}
}

// TestScanFindsDups is the end-to-end scenario: two files holding the same
// block with different formatting and comments end up with the same
// fingerprint on their closing lines, and Dups points at both.
func TestScanFindsDups(t *testing.T) {
	data := fstest.MapFS{
		"a.cpp": {Data: []byte(lineprint.DataMainCpp)},
		"b.cpp": {Data: []byte(lineprint.DataMainCppTabs)},
	}

	_, all, err := WalkFS(data, "/test/in-memory", lineprint.Md5FingerPrint, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	pairSims := lineprint.GetPairSims(all)
	if len(pairSims) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairSims))
	}
	if !pairSims[0].Sim.Identical() {
		t.Errorf("pair should be identical, got %s", pairSims[0].Sim)
	}

	want := []lineprint.Dup{
		{
			// echo -n 'intmain(){return0;}' | md5sum
			Fingerprint: "260",
			Locations: []lineprint.Location{
				{Path: "a.cpp", Line: 3},
				{Path: "b.cpp", Line: 3},
			},
		},
	}
	if diff := cmp.Diff(want, lineprint.Dups(all)); diff != "" {
		t.Errorf("Dups mismatch (-want +got):\n%s", diff)
	}
}

// TestWalkRelativePathPanics pins the absolute-path precondition.
func TestWalkRelativePathPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for relative walkPath")
		}
	}()
	Walk(lineprint.DataTree, "test: ", "relative/path", lineprint.Md5FingerPrint, os.Stderr, false)
}

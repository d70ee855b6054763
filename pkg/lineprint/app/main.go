package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/src-lua/cptools/pkg/lineprint"
)

func usage() {
	fmt.Println("Usage: cptools-hash <file|dir|-> [-s|--save]")
	fmt.Println()
	fmt.Println("Prints a 3-character fingerprint for each line of a C++ file.")
	fmt.Println("The fingerprint covers the block the line completes, so identical")
	fmt.Println("blocks get identical fingerprints on their closing lines.")
	fmt.Println()
	fmt.Println("  cptools-hash A            hash A.cpp to stdout")
	fmt.Println("  cptools-hash A -s         save output to A.hashed")
	fmt.Println("  cptools-hash -            hash stdin")
	fmt.Println("  cptools-hash src/         browse duplicate blocks under src/")
}

func Run() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		usage()
		if len(os.Args) < 2 {
			os.Exit(1)
		}
		return
	}

	var save bool
	var target string
	for _, arg := range os.Args[1:] {
		switch {
		case arg == "-s" || arg == "--save":
			save = true
		case strings.HasPrefix(arg, "-") && arg != "-":
			fmt.Fprintf(os.Stderr, "unknown flag %q\n", arg)
			os.Exit(1)
		default:
			target = arg
		}
	}
	if target == "" {
		fmt.Fprintln(os.Stderr, "no file specified")
		os.Exit(1)
	}

	if target == "-" {
		if err := lineprint.HashTo(os.Stdout, os.Stdin, lineprint.Md5FingerPrint); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	path := target
	info, err := os.Stat(path)
	if err != nil && filepath.Ext(path) == "" {
		// a bare problem name like "A" means A.cpp
		path = target + ".cpp"
		info, err = os.Stat(path)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if info.IsDir() {
		runScan(path)
		return
	}
	hashFile(path, save)
}

// hashFile hashes a single file to stdout, or to <file>.hashed with save.
func hashFile(path string, save bool) {
	fd, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer fd.Close()

	out := os.Stdout
	if save {
		outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".hashed"
		out, err = os.Create(outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		defer out.Close()
		defer fmt.Fprintln(os.Stderr, "saved to", outPath)
	}

	if err := lineprint.HashTo(out, fd, lineprint.Md5FingerPrint); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runScan walks dir and opens the duplicate browser.
func runScan(dir string) {
	logw := &lumberjack.Logger{
		Filename:   "cptools-hash.log",
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	defer logw.Close()

	p := tea.NewProgram(newModel(dir, logw), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(logw, "ERROR there's been an error: %v - shutting down", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Fprintln(logw, "INF closing")
}

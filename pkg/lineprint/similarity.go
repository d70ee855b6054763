package lineprint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Similarity describes how much line content two hashed files share.
// Lines are matched by fingerprint, not by position, so moved blocks still
// count as same.
type Similarity struct {
	LinesSame int
	LinesDiff int
	PathSim   float64
}

// Identical reports whether the two files contained exactly the same
// normalized lines, in whatever order.
func (s Similarity) Identical() bool {
	return s.LinesDiff == 0
}

func (s Similarity) String() string {
	total := s.LinesSame + s.LinesDiff
	ratio := 1.0
	if total > 0 {
		ratio = float64(s.LinesSame) / float64(total)
	}
	return fmt.Sprintf("<Similarity lines=%.2f path=%.2f>", ratio, s.PathSim)
}

// Less reports whether s1 ranks before (is more similar than) s2, where
// similarity is defined as same / (same+diff).
// but we simplify the formula to remove float conversions and rounding errors.
// s1.LinesSame / (s1.LinesSame + s1.LinesDiff) > s2.LinesSame / (s2.LinesSame + s2.LinesDiff)
// cross-multiplies to s1.LinesDiff * s2.LinesSame < s2.LinesDiff * s1.LinesSame
func (s1 Similarity) Less(s2 Similarity) bool {
	if s1.LinesDiff*s2.LinesSame < s2.LinesDiff*s1.LinesSame {
		return true
	}
	if s1.LinesDiff*s2.LinesSame > s2.LinesDiff*s1.LinesSame {
		return false
	}
	return s1.PathSim > s2.PathSim
}

// NewSimilarity compares the line fingerprints of two files.
func NewSimilarity(a, b FilePrint) Similarity {
	af := sortedFingerprints(a)
	bf := sortedFingerprints(b)

	var sim Similarity
	i, j := 0, 0
	for i < len(af) || j < len(bf) {
		switch {
		case i == len(af):
			sim.LinesDiff++
			j++
		case j == len(bf):
			sim.LinesDiff++
			i++
		case af[i] < bf[j]:
			sim.LinesDiff++
			i++
		case af[i] > bf[j]:
			sim.LinesDiff++
			j++
		default:
			// we assume here that matching fingerprints mean matching content,
			// which truncation does not guarantee. good enough for eyeballing.
			sim.LinesSame++
			i++
			j++
		}
	}

	sim.PathSim = strutil.Similarity(a.Path, b.Path, metrics.NewHamming())
	return sim
}

func sortedFingerprints(fp FilePrint) []string {
	fps := make([]string, len(fp.Lines))
	for i, lp := range fp.Lines {
		fps[i] = lp.Fingerprint
	}
	sort.Strings(fps)
	return fps
}

type PairSim struct {
	Path1 string
	Path2 string
	Sim   Similarity
}

// GetPairSims compares every pair of hashed files and returns the pairs
// ordered from most to least similar.
func GetPairSims(all map[string]FilePrint) []PairSim {
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pairSims []PairSim
	for i, k1 := range keys {
		for _, k2 := range keys[i+1:] {
			pairSims = append(pairSims, PairSim{
				Path1: k1,
				Path2: k2,
				Sim:   NewSimilarity(all[k1], all[k2]),
			})
		}
	}

	sort.SliceStable(pairSims, func(i, j int) bool {
		return pairSims[i].Sim.Less(pairSims[j].Sim)
	})
	return pairSims
}

// Location is one occurrence of a duplicated block: the file, and the 1-based
// number of the line that closed the block.
type Location struct {
	Path string
	Line int
}

// Dup is a block fingerprint occurring in more than one file.
type Dup struct {
	Fingerprint string
	Locations   []Location
}

// Dups reports fingerprints of block-closing lines (lines containing a close
// delimiter) that show up in two or more files. Dups are ordered by
// fingerprint, locations by path then line.
func Dups(all map[string]FilePrint) []Dup {
	locs := make(map[string][]Location)
	for path, fp := range all {
		for i, lp := range fp.Lines {
			if !strings.ContainsRune(lp.Line, '}') {
				continue
			}
			locs[lp.Fingerprint] = append(locs[lp.Fingerprint], Location{Path: path, Line: i + 1})
		}
	}

	var dups []Dup
	for fp, ll := range locs {
		paths := make(map[string]struct{})
		for _, l := range ll {
			paths[l.Path] = struct{}{}
		}
		if len(paths) < 2 {
			continue
		}
		sort.Slice(ll, func(i, j int) bool {
			if ll[i].Path != ll[j].Path {
				return ll[i].Path < ll[j].Path
			}
			return ll[i].Line < ll[j].Line
		})
		dups = append(dups, Dup{Fingerprint: fp, Locations: ll})
	}

	sort.Slice(dups, func(i, j int) bool {
		return dups[i].Fingerprint < dups[j].Fingerprint
	})
	return dups
}

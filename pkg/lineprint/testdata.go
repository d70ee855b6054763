// This file collects data shared by tests in this package and in the app
// package. The fixture sources evolve into FilePrints through hashing, and
// FilePrints into similarities; keeping the stages next to each other makes
// it easier to see how the data flows between the packages' apis.
package lineprint

import "testing/fstest"

// Fingerprints below are the first 3 hex characters of md5 over the
// comment- and whitespace-stripped candidate, e.g.:
// echo -n 'intmain(){' | md5sum
// e8d76f555935ae16e78987fa0a7d3117  -
// echo -n 'return0;' | md5sum
// bb30ba0b277e7e114796d8bd84617021  -
// echo -n 'intmain(){return0;}' | md5sum
// 260c9ad5fc96f9d520c8d470e48a41bd  -
// echo -n 'intx;' | md5sum
// 3ecdec351fce13cba8a59e38409b3c9e  -

var DataMainCpp = "int main() {\n  return 0;\n}\n"

// DataMainCppTabs is DataMainCpp with different indentation and a comment;
// it must fingerprint identically, line for line. Note the block comment:
// scope buffers concatenate lines without newlines, so a trailing // comment
// would swallow the rest of the block during normalization.
var DataMainCppTabs = "int main() {\n\treturn 0; /* done */\n}\n"

var DataUtilH = "int x;\n"

var DataMainPrint = FilePrint{
	Path: "main.cpp",
	Lines: []LinePrint{
		{Fingerprint: "e8d", Line: "int main() {"},
		{Fingerprint: "bb3", Line: "  return 0;"},
		{Fingerprint: "260", Line: "}"},
	},
}

var DataUtilPrint = FilePrint{
	Path: "lib/util.h",
	Lines: []LinePrint{
		{Fingerprint: "3ec", Line: "int x;"},
	},
}

// DataTree is a small source tree for walk tests. notes.txt is not a source
// file and __MACOSX is junk; neither should be hashed.
var DataTree = fstest.MapFS{
	"main.cpp":          {Data: []byte(DataMainCpp)},
	"lib/util.h":        {Data: []byte(DataUtilH)},
	"notes.txt":         {Data: []byte("do not hash me\n")},
	"__MACOSX/fake.cpp": {Data: []byte("ignore this entry")},
}

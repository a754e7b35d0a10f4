package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// inlineSeeds cover the lexical corners that sample scripts rarely hit.
var inlineSeeds = []string{
	"",
	"if x == 1 { }",
	"*start\n@alice \"hi\"\ngoto *start\n",
	">\"line one\n    line two\"P",
	"「a\\」b」（ささやき）｛叫び｝『思う』",
	"$<save.slot-1> #<> $<a b @",
	"0x1F 0o17 0c17 0b101 1_000 1.5e3 12ms 3.5s 99999999999999999999",
	"\"\\u{110000}\\xZ1\\q\"",
	"a /* x /* y */ z */ b /* open",
	"((]]{",
	"menu {\n \"a\" { x }\n}\nmenu",
	"//:: EXPECT-TOKEN:+L Keyword if\nif\n//:: EXPECT-EOF\n",
	"\xEF\xBB\xBFa\r\nb\rc\xff",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.nvl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".nvl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

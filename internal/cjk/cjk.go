// Package cjk classifies runes as CJK ideographs, radicals and strokes, and
// separates CJK runs from surrounding text.
package cjk

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

var (
	// KangxiRadicals is the Kangxi Radicals block, ⼀ through ⿕.
	KangxiRadicals = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x2F00, Hi: 0x2FD5, Stride: 1}}}

	// SupplementalRadicals is the CJK Radicals Supplement block, ⺀ through ⻳.
	SupplementalRadicals = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x2E80, Hi: 0x2EF3, Stride: 1}}}

	// Strokes is the CJK Strokes block, ㇀ through ㇣.
	Strokes = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x31C0, Hi: 0x31E3, Stride: 1}}}

	ideographs = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x2FF0, Hi: 0x2FFF, Stride: 1}, // ideographic description characters
			{Lo: 0x3400, Hi: 0x4DBF, Stride: 1}, // extension A
			{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1}, // unified ideographs
			{Lo: 0xF900, Hi: 0xFAFF, Stride: 1}, // compatibility ideographs
		},
		R32: []unicode.Range32{
			{Lo: 0x20000, Hi: 0x2A6DF, Stride: 1}, // extension B
			{Lo: 0x2A700, Hi: 0x2B73F, Stride: 1}, // extension C
			{Lo: 0x2B740, Hi: 0x2B81F, Stride: 1}, // extension D
			{Lo: 0x2F800, Hi: 0x2FA1F, Stride: 1}, // compatibility supplement
		},
	}

	// CJK is every rune treated as part of a CJK run.
	CJK = rangetable.Merge(ideographs, KangxiRadicals, SupplementalRadicals, Strokes)
)

// IsCJK reports whether r is an ideograph, radical, stroke or ideographic
// description character.
func IsCJK(r rune) bool {
	return unicode.Is(CJK, r)
}

// IsKangxiRadical reports whether r is in the Kangxi Radicals block. The
// unified ideograph 一 is not; the radical ⼀ is.
func IsKangxiRadical(r rune) bool {
	return unicode.Is(KangxiRadicals, r)
}

// IsSupplementalRadical reports whether r is in the CJK Radicals Supplement.
func IsSupplementalRadical(r rune) bool {
	return unicode.Is(SupplementalRadicals, r)
}

// IsRadical reports whether r is a Kangxi or supplemental radical.
func IsRadical(r rune) bool {
	return IsKangxiRadical(r) || IsSupplementalRadical(r)
}

// IsStroke reports whether r is a CJK stroke.
func IsStroke(r rune) bool {
	return unicode.Is(Strokes, r)
}

// IsPunctuationOrWhitespace reports whether r is Unicode punctuation or
// white space.
func IsPunctuationOrWhitespace(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r)
}

// Classifier is the rune classifier used by segmentation.
type Classifier struct{}

// Default classifies with the package-level tables.
var Default Classifier

func (Classifier) IsCJK(r rune) bool { return IsCJK(r) }

func (Classifier) IsPunctuationOrWhitespace(r rune) bool { return IsPunctuationOrWhitespace(r) }

// ExtractCJK splits text into a format pattern and its CJK runs.
// The pattern holds one %s per run with every literal % doubled, so
// fmt.Sprintf(pattern, runs...) reproduces text.
func ExtractCJK(text string) (pattern string, runs []string) {
	var p, run strings.Builder
	runs = []string{}

	flush := func() {
		if run.Len() > 0 {
			runs = append(runs, run.String())
			run.Reset()
			p.WriteString("%s")
		}
	}

	for _, r := range text {
		if IsCJK(r) {
			run.WriteRune(r)
			continue
		}
		flush()
		if r == '%' {
			p.WriteString("%%")
			continue
		}
		p.WriteRune(r)
	}
	flush()

	return p.String(), runs
}

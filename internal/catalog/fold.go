package catalog

import "golang.org/x/text/cases"

// foldTitle is the single normalization used to compare titles.
// Both stored and queried titles go through it.
func foldTitle(title string) string {
	return cases.Fold().String(title)
}

// SameTitle reports whether a and b are equal after case folding.
func SameTitle(a, b string) bool {
	return foldTitle(a) == foldTitle(b)
}

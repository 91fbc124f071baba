// Package nativemod loads the platform-specific prebuilt segmentation
// module and exposes its entry points as an immutable function table.
package nativemod

import "fmt"

// WordTag is one word with its part-of-speech tag.
type WordTag struct {
	Word string
	Tag  string
}

// Keyword is one extracted keyword with its TF-IDF weight.
type Keyword struct {
	Keyword string
	Weight  float64
}

// API is the function table a loaded module publishes. It is built once
// by the loader and held by composition; fields are never reassigned
// after load.
type API struct {
	// LoadDict merges a user dictionary (jieba dict format) into the
	// segmenter.
	LoadDict func(dict []byte) error
	// Cut segments text into words; hmm enables the HMM model for
	// unknown words.
	Cut func(text string, hmm bool) []string
	// CutAll returns every possible word in text.
	CutAll func(text string) []string
	// CutForSearch segments with the finer granularity used for search
	// engine indexing.
	CutForSearch func(text string, hmm bool) []string
	// Tag segments text and attaches part-of-speech tags.
	Tag func(text string, hmm bool) []WordTag
	// Extract returns up to topN keywords by TF-IDF weight, optionally
	// restricted to allowedTags.
	Extract func(text string, topN int, allowedTags []string) []Keyword
	// LoadTFIDFDict replaces the IDF dictionary used by Extract.
	LoadTFIDFDict func(dict []byte) error
	// Activate is the module's explicit one-time initialization hook.
	Activate func() error
}

// Validate reports the first missing entry point. A module that loads
// but publishes a partial table is a load failure, not a runtime one.
func (a *API) Validate() error {
	entries := []struct {
		name string
		ok   bool
	}{
		{"LoadDict", a.LoadDict != nil},
		{"Cut", a.Cut != nil},
		{"CutAll", a.CutAll != nil},
		{"CutForSearch", a.CutForSearch != nil},
		{"Tag", a.Tag != nil},
		{"Extract", a.Extract != nil},
		{"LoadTFIDFDict", a.LoadTFIDFDict != nil},
		{"Activate", a.Activate != nil},
	}
	for _, e := range entries {
		if !e.ok {
			return fmt.Errorf("module table is missing %s", e.name)
		}
	}
	return nil
}

// Module is the loaded artifact's handle: its function table plus the
// path it was loaded from. Created at most once per process and held for
// the process lifetime; there is no unload.
type Module struct {
	API  API
	Path string
}

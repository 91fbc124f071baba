package service

import (
	"sort"

	"github.com/kokoro-js/jieba/nativemod"
)

// LoadDictionary merges a user dictionary into the segmenter.
func (s *Service) LoadDictionary(dict []byte) error {
	api, err := s.api()
	if err != nil {
		return err
	}
	return api.LoadDict(dict)
}

// LoadTFIDFDictionary replaces the IDF dictionary used by keyword
// extraction.
func (s *Service) LoadTFIDFDictionary(dict []byte) error {
	api, err := s.api()
	if err != nil {
		return err
	}
	return api.LoadTFIDFDict(dict)
}

// Segment splits text into words. hmm enables the HMM model for words
// outside the dictionary.
func (s *Service) Segment(text string, hmm bool) ([]string, error) {
	api, err := s.api()
	if err != nil {
		return nil, err
	}
	return api.Cut(text, hmm), nil
}

// SegmentAll returns every dictionary word found in text.
func (s *Service) SegmentAll(text string) ([]string, error) {
	api, err := s.api()
	if err != nil {
		return nil, err
	}
	return api.CutAll(text), nil
}

// SegmentForSearch splits text at the finer granularity used for search
// indexing.
func (s *Service) SegmentForSearch(text string, hmm bool) ([]string, error) {
	api, err := s.api()
	if err != nil {
		return nil, err
	}
	return api.CutForSearch(text, hmm), nil
}

// Tag segments text and attaches part-of-speech tags.
func (s *Service) Tag(text string, hmm bool) ([]nativemod.WordTag, error) {
	api, err := s.api()
	if err != nil {
		return nil, err
	}
	return api.Tag(text, hmm), nil
}

// ExtractKeywords returns at most topN keywords ordered by non-increasing
// weight. allowedTags, when non-empty, restricts candidates by
// part-of-speech tag. The ordering and bound hold regardless of what the
// native table returns.
func (s *Service) ExtractKeywords(text string, topN int, allowedTags []string) ([]nativemod.Keyword, error) {
	api, err := s.api()
	if err != nil {
		return nil, err
	}
	if topN <= 0 {
		return nil, nil
	}

	keywords := api.Extract(text, topN, allowedTags)
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Weight > keywords[j].Weight
	})
	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords, nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kokoro-js/jieba/nativemod"
	"github.com/kokoro-js/jieba/types"
)

// readyService returns a service in StateReady backed by the given table.
func readyService(t *testing.T, api nativemod.API) *Service {
	t.Helper()
	s, _, _, loader := newTestService(t, t.TempDir())
	loader.api = api
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

func TestSegment_Forwarding(t *testing.T) {
	s := readyService(t, scriptedAPI())

	words, err := s.Segment("你好世界", true)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(words) != 2 || words[0] != "你好" || words[1] != "世界" {
		t.Errorf("segment = %v", words)
	}

	all, err := s.SegmentAll("你好世界")
	if err != nil {
		t.Fatalf("segment all: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("segment all returned %d words", len(all))
	}

	tags, err := s.Tag("你好世界", true)
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	if len(tags) != 2 || tags[1].Tag != "n" {
		t.Errorf("tags = %v", tags)
	}
}

func TestExtractKeywords_SortedAndBounded(t *testing.T) {
	api := scriptedAPI()
	api.Extract = func(string, int, []string) []nativemod.Keyword {
		// Deliberately unsorted, more entries than requested.
		return []nativemod.Keyword{
			{Keyword: "c", Weight: 0.5},
			{Keyword: "a", Weight: 3.4},
			{Keyword: "d", Weight: 0.1},
			{Keyword: "b", Weight: 1.2},
		}
	}
	s := readyService(t, api)

	keywords, err := s.ExtractKeywords("text", 3, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(keywords) != 3 {
		t.Fatalf("topN=3 returned %d entries", len(keywords))
	}
	for i := 1; i < len(keywords); i++ {
		if keywords[i].Weight > keywords[i-1].Weight {
			t.Errorf("weights not non-increasing at %d: %v", i, keywords)
		}
	}
	if keywords[0].Keyword != "a" {
		t.Errorf("heaviest keyword = %s, want a", keywords[0].Keyword)
	}
}

func TestExtractKeywords_NonPositiveTopN(t *testing.T) {
	s := readyService(t, scriptedAPI())
	keywords, err := s.ExtractKeywords("text", 0, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(keywords) != 0 {
		t.Errorf("topN=0 should return nothing, got %v", keywords)
	}
}

func TestAPI_BeforeReady(t *testing.T) {
	s, _, _, _ := newTestService(t, t.TempDir())

	if _, err := s.Segment("text", false); !errors.Is(err, types.ErrLoad) {
		t.Errorf("Segment before Start: expected ErrLoad-kind error, got %v", err)
	}
	if err := s.LoadDictionary([]byte("词 9 n")); !errors.Is(err, types.ErrLoad) {
		t.Errorf("LoadDictionary before Start: expected ErrLoad-kind error, got %v", err)
	}
	if _, err := s.ExtractKeywords("text", 5, nil); !errors.Is(err, types.ErrLoad) {
		t.Errorf("ExtractKeywords before Start: expected ErrLoad-kind error, got %v", err)
	}
}

func TestDictionaryForwarding(t *testing.T) {
	var gotDict, gotIDF []byte
	api := scriptedAPI()
	api.LoadDict = func(d []byte) error { gotDict = d; return nil }
	api.LoadTFIDFDict = func(d []byte) error { gotIDF = d; return nil }
	s := readyService(t, api)

	if err := s.LoadDictionary([]byte("自定义 9 n")); err != nil {
		t.Fatalf("load dictionary: %v", err)
	}
	if string(gotDict) != "自定义 9 n" {
		t.Error("dictionary bytes not forwarded verbatim")
	}
	if err := s.LoadTFIDFDictionary([]byte("词 1.5")); err != nil {
		t.Fatalf("load tfidf: %v", err)
	}
	if string(gotIDF) != "词 1.5" {
		t.Error("tfidf bytes not forwarded verbatim")
	}
}

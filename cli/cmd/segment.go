package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kokoro-js/jieba/nativemod"
	"github.com/kokoro-js/jieba/service"
)

// Segmentation modes for the segment command.
const (
	ModeCut     = "cut"     // plain segmentation
	ModeAll     = "all"     // full segmentation, every dictionary word
	ModeSearch  = "search"  // search-engine granularity
	ModeTag     = "tag"     // segmentation with part-of-speech tags
	ModeExtract = "extract" // TF-IDF keyword extraction
)

// SegmentCommand returns the segment command. It installs the native
// module first when it is not present locally.
func SegmentCommand() *cli.Command {
	return &cli.Command{
		Name:  "segment",
		Usage: "Segment text or extract keywords with the native module",
		Flags: append(PipelineFlags(),
			&cli.StringFlag{
				Name:     "text",
				Usage:    "Text to process",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Action: cut, all, search, tag, or extract",
				Value: ModeCut,
			},
			&cli.IntFlag{
				Name:  "top-n",
				Usage: "Result count for extract mode",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "hmm",
				Usage: "Enable the HMM model for out-of-dictionary words",
				Value: true,
			},
			&cli.StringSliceFlag{
				Name:  "tags",
				Usage: "Restrict extract mode to these part-of-speech tags",
			},
		),
		Action: segmentAction,
	}
}

func segmentAction(c *cli.Context) error {
	mode := c.String("mode")
	if !validMode(mode) {
		return cli.Exit(fmt.Sprintf("unknown mode %q", mode), exitFailure)
	}

	svc, _, cfg, err := buildService(c)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	if err := svc.Start(c.Context); err != nil {
		return exit(err)
	}
	if err := loadDictionaries(cfg, svc); err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	reply, err := buildReply(svc, mode, c.String("text"), c.Bool("hmm"), c.Int("top-n"), c.StringSlice("tags"))
	if err != nil {
		return exit(err)
	}
	fmt.Fprintln(c.App.Writer, reply)
	return nil
}

func validMode(mode string) bool {
	switch mode {
	case ModeCut, ModeAll, ModeSearch, ModeTag, ModeExtract:
		return true
	}
	return false
}

// buildReply runs one segmentation action and renders the reply string,
// one result per line.
func buildReply(svc *service.Service, mode, text string, hmm bool, topN int, tags []string) (string, error) {
	switch mode {
	case ModeCut:
		words, err := svc.Segment(text, hmm)
		if err != nil {
			return "", err
		}
		return formatWords(words), nil
	case ModeAll:
		words, err := svc.SegmentAll(text)
		if err != nil {
			return "", err
		}
		return formatWords(words), nil
	case ModeSearch:
		words, err := svc.SegmentForSearch(text, hmm)
		if err != nil {
			return "", err
		}
		return formatWords(words), nil
	case ModeTag:
		tagged, err := svc.Tag(text, hmm)
		if err != nil {
			return "", err
		}
		return formatTagged(tagged), nil
	case ModeExtract:
		keywords, err := svc.ExtractKeywords(text, topN, tags)
		if err != nil {
			return "", err
		}
		return formatKeywords(keywords), nil
	}
	return "", fmt.Errorf("unknown mode %q", mode)
}

func formatWords(words []string) string {
	return strings.Join(words, "\n")
}

func formatTagged(tagged []nativemod.WordTag) string {
	lines := make([]string, len(tagged))
	for i, wt := range tagged {
		lines[i] = fmt.Sprintf("%s %s", wt.Word, wt.Tag)
	}
	return strings.Join(lines, "\n")
}

func formatKeywords(keywords []nativemod.Keyword) string {
	lines := make([]string, len(keywords))
	for i, kw := range keywords {
		lines[i] = fmt.Sprintf("%s %.4f", kw.Keyword, kw.Weight)
	}
	return strings.Join(lines, "\n")
}

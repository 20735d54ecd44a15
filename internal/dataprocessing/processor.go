package dataprocessing

import (
	"kwlens/pkg/contracts/domain"
)

// Pipeline runs the keyword analysis over a loaded table.
type Pipeline struct {
	observe StageObserver
}

// NewPipeline creates a pipeline. observe may be nil.
func NewPipeline(observe StageObserver) *Pipeline {
	return &Pipeline{observe: observe}
}

// Process runs the analysis with no stage observer.
func Process(t domain.Table, opts domain.AnalysisOptions) (*domain.AnalysisResult, error) {
	return NewPipeline(nil).Process(t, opts)
}

// Process validates the table, sorts it, adds the derived columns and
// computes the three summaries. The input table is not modified.
func (p *Pipeline) Process(t domain.Table, opts domain.AnalysisOptions) (*domain.AnalysisResult, error) {
	done := p.stage(StageValidate)
	err := ValidateColumns(t.Columns, RequiredColumns())
	done()
	if err != nil {
		return nil, err
	}

	preview := make([]domain.KeywordRow, 0, domain.DefaultPreviewRows)
	for i := 0; i < len(t.Rows) && i < domain.DefaultPreviewRows; i++ {
		preview = append(preview, t.Rows[i])
	}

	done = p.stage(StageSort)
	sorted := SortRows(t)
	ranked, unranked := PartitionRanked(sorted)
	done()

	done = p.stage(StageOccurrence)
	out := AnnotateOccurrence(sorted, CountOccurrences(ranked))
	done()

	done = p.stage(StageTitleSubtitle)
	out = AnnotateTitleSubtitle(out)
	done()

	reference := opts.Reference.Text()
	done = p.stage(StageReference)
	out = AnnotateReference(out, reference)
	done()

	done = p.stage(StageProbe)
	out = AnnotateProbe(out, opts.Probe)
	done()

	out.Columns = domain.OutputColumns(t.Columns)

	done = p.stage(StageSummaries)
	result := &domain.AnalysisResult{
		Table:               out,
		Preview:             preview,
		RankedCount:         len(ranked),
		UnrankedCount:       len(unranked),
		ReferenceText:       reference,
		Probe:               opts.Probe,
		TopKeywordWords:     MostCommonWords(ranked, domain.ColumnKeyword, opts.TopKeywordWords),
		TopAppSubtitleWords: MostCommonWordsCombined(ranked, domain.ColumnAppName, domain.ColumnSubtitle, opts.TopAppSubtitleWords),
		TopUnrankedKeywords: TopUnrankedKeywords(sorted, opts.TopUnranked),
	}
	done()

	return result, nil
}

func (p *Pipeline) stage(name string) func() {
	if p.observe == nil {
		return func() {}
	}
	if end := p.observe(name); end != nil {
		return end
	}
	return func() {}
}

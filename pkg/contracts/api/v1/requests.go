// Package api contains the HTTP contract definitions for kwlens.
// Version v1 represents the current stable API version.
package api

import (
	"kwlens/pkg/contracts/domain"
)

// Multipart form field names accepted by the analysis endpoints
const (
	FieldFile                = "file"
	FieldTitle               = "title"
	FieldSubtitle            = "subtitle"
	FieldKeywordField        = "keyword_field"
	FieldKeywordField2       = "keyword_field_2"
	FieldProbe               = "probe"
	FieldTopKeywordWords     = "top_keyword_words"
	FieldTopAppSubtitleWords = "top_app_subtitle_words"
	FieldTopUnranked         = "top_unranked"
	FieldFormat              = "format"
)

// AnalysisRequest is the decoded multipart form of an analysis upload.
// Nil fields were not sent and fall back to the configured defaults; a field
// sent empty stays empty.
type AnalysisRequest struct {
	FileName string `form:"file" validate:"required,filename,spreadsheet"`

	Title         *string `form:"title" validate:"omitempty,max=500"`
	Subtitle      *string `form:"subtitle" validate:"omitempty,max=500"`
	KeywordField  *string `form:"keyword_field" validate:"omitempty,max=2000"`
	KeywordField2 *string `form:"keyword_field_2" validate:"omitempty,max=2000"`
	Probe         *string `form:"probe" validate:"omitempty,max=500"`

	TopKeywordWords     *int `form:"top_keyword_words" validate:"omitempty,gte=0,lte=1000"`
	TopAppSubtitleWords *int `form:"top_app_subtitle_words" validate:"omitempty,gte=0,lte=1000"`
	TopUnranked         *int `form:"top_unranked" validate:"omitempty,gte=0,lte=1000"`

	// Format is only read by the export endpoint
	Format string `form:"format" validate:"omitempty,oneof=xlsx csv"`
}

// Options overlays the fields that were sent on defaults.
func (r AnalysisRequest) Options(defaults domain.AnalysisOptions) domain.AnalysisOptions {
	opts := defaults
	setString(&opts.Reference.Title, r.Title)
	setString(&opts.Reference.Subtitle, r.Subtitle)
	setString(&opts.Reference.KeywordField, r.KeywordField)
	setString(&opts.Reference.KeywordField2, r.KeywordField2)
	setString(&opts.Probe, r.Probe)
	setInt(&opts.TopKeywordWords, r.TopKeywordWords)
	setInt(&opts.TopAppSubtitleWords, r.TopAppSubtitleWords)
	setInt(&opts.TopUnranked, r.TopUnranked)
	return opts
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Package presentation renders analysis results for people.
package presentation

import (
	"io"

	"kwlens/pkg/contracts/domain"
)

// Renderer displays an analysis result.
type Renderer interface {
	Render(w io.Writer, result *domain.AnalysisResult) error
}

// Package services implements the application layer of kwlens. It sits
// between the transports (HTTP handlers, CLI) and the analysis core in
// internal/dataprocessing.
//
// AnalysisService loads a keyword sheet, runs the pipeline and exports the
// result. Each call is traced with one span per pipeline stage and recorded
// in the business metrics. Calls share nothing, so one service value serves
// concurrent requests.
//
//	svc := services.NewAnalysisService(tracer, metrics, logger, "")
//	result, err := svc.Analyze(ctx, "keywords.xlsx", upload, opts)
//	if err != nil {
//	    return err
//	}
//	return svc.Export(ctx, w, result, exporter.FormatXLSX)
//
// HealthService reports liveness, readiness and version information.
package services

// Package http implements the HTTP handlers of the kwlens web service.
// Handlers stay thin: they decode the multipart upload, validate it, call
// the analysis service and render the result or an RFC 7807 problem.
//
// # Endpoints
//
//	POST /api/analysis          multipart upload, JSON result
//	POST /api/analysis/export   multipart upload, xlsx or csv attachment
//	GET  /api/health            liveness summary
//	GET  /api/health/live       liveness with runtime details
//	GET  /api/health/ready      readiness (503 when not ready)
//	GET  /api/version           build information
//	GET  /metrics               Prometheus scrape endpoint
//
// # Upload form
//
// The file travels in the "file" part; the other parts are optional and
// fall back to the configured defaults when absent:
//
//	title, subtitle, keyword_field, keyword_field_2, probe
//	top_keyword_words, top_app_subtitle_words, top_unranked
//	format (export only, also accepted as ?format=)
//
// # Errors
//
//	400  unreadable spreadsheet, missing upload, invalid field
//	413  upload larger than the configured limit
//	415  request is not multipart/form-data
//	422  sheet lacks required columns (missing_columns lists them)
package http

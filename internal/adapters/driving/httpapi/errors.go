// Package httpapi serves the report API over HTTP using fasthttp.
//
// Routes:
//
//	POST   /api/parse         multipart upload in field "file"; parses and stores
//	GET    /api/reports       stored reports without full text
//	GET    /api/reports/{id}  one stored report
//	DELETE /api/reports/{id}  delete a report
//	POST   /api/clear         delete every report
//	POST   /api/diff          {"policyA": {...}, "policyB": {...}}
//	GET    /api/export/{id}   XLSX attachment
//	GET    /healthz           liveness
//
// Every response carries an X-Request-ID header. Successful JSON bodies
// carry "ok": true; errors carry "ok": false and a "detail" message.
package httpapi

import "errors"

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("httpapi: report service is required")

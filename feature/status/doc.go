// Package status exposes sync run reports over HTTP.
//
// The surface is deliberately small: GET /health for liveness, GET /runs for
// the most recent run reports, and POST /runs to trigger the configured sync
// job. Access to the run endpoints can be gated by a static API key.
package status

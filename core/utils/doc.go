// Package utils provides loose value coercion helpers.
//
// Rows flow into the engine from heterogeneous sources (JSON objects, SQL
// drivers) that decode the same logical value into different Go types. These
// helpers fold those representations into canonical forms so unique keys
// correlate across sources.
package utils

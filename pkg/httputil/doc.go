// Package httputil provides the HTTP plumbing used to fetch remote assets.
//
//   - [Fetch]: GET a URL with a size limit and status classification
//   - [Retry]: retry with exponential backoff for transient failures
//
// Transient failures (network errors, 5xx, 429) are wrapped in
// [RetryableError]; everything else is returned as-is so [Retry] stops
// immediately.
package httputil

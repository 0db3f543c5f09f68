// Package schema turns documents the caller already holds into descriptor
// batches for the synthesis engine. Two document families are understood:
// the tracking system's create-metadata payload (JSON or YAML) and OpenAPI 3
// documents whose operation request body describes the item being created.
//
// Sources are local only (a file path or an fs.FS entry). Fetching schemas
// over the network is left to the caller.
package schema

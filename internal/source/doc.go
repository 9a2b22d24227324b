// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source loads the raw JSON text of a document spec.
//
// A spec is <location>[::<selector>]. The location is "-" for stdin, an
// s3://bucket/key[?versionId=v] URI, or a local file. YAML files are
// converted to JSON, sealed documents are decrypted, and the optional
// selector narrows the result using driller path syntax.
package source

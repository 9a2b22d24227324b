// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads SDK configuration and fetches JSON documents stored as
// S3 objects addressed by s3:// URIs.
package aws

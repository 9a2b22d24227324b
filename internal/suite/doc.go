// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package suite discovers and runs directories of comparison cases.
//
// A case directory holds expected.json (or .yaml/.yml) and either an actual
// document or a script.hcl producing one, plus an optional input document
// for the script:
//
//	cases/
//	  users/        expected.json  actual.json
//	  totals/       expected.yaml  script.hcl  input.json
package suite

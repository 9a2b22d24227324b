// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package script evaluates HCL scripts that compute a JSON document.
//
// A script is a flat list of attributes. The "result" attribute is the
// output; every other attribute is a local, visible as local.<name>.
//
//	total  = sum([for i in items : i.price])
//	result = { count = length(items), total = round(local.total, 2) }
//
// The input document is bound to "input" and, when it is an object, each
// of its top-level members is bound by name as well.
package script

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller narrows a JSON document to the sub-document addressed by a
// dotted selector such as "users[0].name" or "items[]".
package driller

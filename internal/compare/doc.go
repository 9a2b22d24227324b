// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package compare decides whether two JSON documents are semantically
// equivalent. It parses both texts into Node trees and walks them in lockstep,
// driven by the expected tree, collecting a path-addressed Mismatch for every
// disagreement it finds. Object member order never matters, integral and
// fractional numbers compare by value with a magnitude-relative tolerance, and
// malformed input is reported as a ParseError rather than as a mismatch.
package compare

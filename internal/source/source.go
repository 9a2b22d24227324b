// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcheck/jcheck/internal/aws"
	"github.com/jcheck/jcheck/internal/driller"
	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/util"
)

// Stdin is the location that reads the document from standard input.
const Stdin = "-"

// StdinAlias also reads standard input. A positional "-" is rewritten to it
// before flag parsing, since the parser stops at a lone dash.
const StdinAlias = "<stdin>"

// IsStdin reports whether location names standard input.
func IsStdin(location string) bool {
	return location == Stdin || location == StdinAlias
}

// PassphraseEnvVar supplies the passphrase for sealed documents.
const PassphraseEnvVar = "JCHECK_PASSPHRASE"

type options struct {
	stdin      io.Reader
	passphrase string
	prompt     func() (string, error)
	region     string
	profile    string
	endpoint   string
	client     aws.GetObjectAPI
}

// Option customizes Load.
type Option func(*options)

// WithStdin replaces os.Stdin as the reader behind "-".
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// WithPassphrase sets the passphrase for sealed documents.
func WithPassphrase(p string) Option {
	return func(o *options) { o.passphrase = p }
}

// WithPrompt replaces the interactive passphrase prompt.
func WithPrompt(fn func() (string, error)) Option {
	return func(o *options) { o.prompt = fn }
}

// WithRegion sets the AWS region for s3:// locations.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithProfile sets the AWS shared config profile for s3:// locations.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithEndpoint points s3:// locations at an S3-compatible store.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithS3Client injects the client used for s3:// locations.
func WithS3Client(c aws.GetObjectAPI) Option {
	return func(o *options) { o.client = c }
}

// Load resolves spec to raw JSON text. Parsing is left to the caller so
// malformed documents surface as comparator parse errors.
func Load(ctx context.Context, spec string, opts ...Option) ([]byte, error) {
	o := options{stdin: os.Stdin, prompt: GetPassphrase}
	for _, opt := range opts {
		opt(&o)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	location, selector, err := util.ParseDocSpec(spec)
	if err != nil {
		return nil, err
	}
	log.Debugf("load: location=%s selector=%s", location, selector)

	data, err := read(ctx, location, &o)
	if err != nil {
		return nil, err
	}

	if isYAML(location) {
		if data, err = YAMLToJSON(data); err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}
	}

	if IsSealed(data) {
		pass, err := o.resolvePassphrase()
		if err != nil {
			return nil, err
		}
		if data, err = Unseal(data, pass); err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}
	}

	if selector != "" {
		if data, err = driller.Drill(data, selector); err != nil {
			return nil, fmt.Errorf("%s: %w", spec, err)
		}
	}

	return data, nil
}

func read(ctx context.Context, location string, o *options) ([]byte, error) {
	switch {
	case IsStdin(location):
		data, err := io.ReadAll(o.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	case aws.IsURI(location):
		return fetchS3(ctx, location, o)
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to read document: %s is a directory", location)
	}
	return os.ReadFile(location)
}

func (o *options) resolvePassphrase() (string, error) {
	if o.passphrase != "" {
		return o.passphrase, nil
	}
	if p := os.Getenv(PassphraseEnvVar); p != "" {
		return p, nil
	}
	if o.prompt == nil {
		return "", ErrNoPassphrase
	}
	return o.prompt()
}

// isYAML reports whether the location names a .yaml or .yml document. Query
// strings on s3 URIs are ignored.
func isYAML(location string) bool {
	if i := strings.IndexByte(location, '?'); i >= 0 && aws.IsURI(location) {
		location = location[:i]
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"sync"

	"github.com/jcheck/jcheck/internal/aws"
	"github.com/jcheck/jcheck/internal/cacheutil"
	"github.com/jcheck/jcheck/internal/config"
	"github.com/jcheck/jcheck/internal/log"
)

var purgeOnce sync.Once

// fetchS3 reads an s3:// location. Versioned objects are immutable and are
// served from the cache when possible.
func fetchS3(ctx context.Context, location string, o *options) ([]byte, error) {
	obj, err := aws.ParseURI(location)
	if err != nil {
		return nil, err
	}

	client := o.client
	if client == nil {
		region, profile := o.region, o.profile
		if region == "" {
			region, _ = config.GetString("s3.region", "")
		}
		if profile == "" {
			profile, _ = config.GetString("s3.profile", "")
		}
		cfg, err := aws.LoadAWSConfig(ctx, aws.WithRegion(region), aws.WithProfile(profile))
		if err != nil {
			return nil, err
		}
		client = aws.NewS3(cfg, aws.WithEndpoint(o.endpoint))
	}

	if obj.VersionID == "" {
		return aws.Fetch(ctx, client, obj)
	}

	purgeOnce.Do(purgeCache)
	return cacheutil.Remember(
		[]string{"s3", obj.Bucket},
		cacheutil.Key(obj.Key, obj.VersionID),
		func() ([]byte, error) { return aws.Fetch(ctx, client, obj) },
	)
}

func purgeCache() {
	hours, _ := config.GetInt("cache.clean", 0)
	if err := cacheutil.Purge(hours); err != nil {
		log.WithError(err).Warnf("cache purge failed")
	}
}

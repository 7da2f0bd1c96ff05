package api

import "context"

// MetadataSource fetches featurestore metadata from a metadata service.
type MetadataSource interface {
	ListFeaturestores(ctx context.Context) ([]string, error)
	GetFeaturestoreMetadata(ctx context.Context, featurestore string) (*FeaturestoreMetadata, error)
}

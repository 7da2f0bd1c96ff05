package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/logicalclocks/featurestore-go-sdk/errdefs"
)

type MetadataApiService service

/*
MetadataApiService List the featurestores of the configured project

@return featurestore names
*/
func (a *MetadataApiService) ListFeaturestores(ctx context.Context) ([]string, error) {
	path := fmt.Sprintf("/hopsworks-api/api/project/%s/featurestores", url.PathEscape(a.client.cfg.ProjectName))
	status, body, err := a.client.do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list featurestores failed, status:%d, body:%s", status, body)
	}

	var featurestores []*Featurestore
	if err := json.Unmarshal(body, &featurestores); err != nil {
		return nil, &errdefs.MetadataDecodeError{Err: err}
	}

	names := make([]string, 0, len(featurestores))
	for _, fs := range featurestores {
		names = append(names, fs.FeaturestoreName)
	}
	return names, nil
}

/*
MetadataApiService Get the metadata document of a featurestore
  - @param featurestore name of the featurestore

@return FeaturestoreMetadata
*/
func (a *MetadataApiService) GetFeaturestoreMetadata(ctx context.Context, featurestore string) (*FeaturestoreMetadata, error) {
	path := fmt.Sprintf("/hopsworks-api/api/project/%s/featurestores/%s/metadata",
		url.PathEscape(a.client.cfg.ProjectName), url.PathEscape(featurestore))
	status, body, err := a.client.do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &errdefs.FeaturestoreNotFoundError{Name: featurestore}
	default:
		return nil, fmt.Errorf("get featurestore metadata failed, featurestore:%s, status:%d, body:%s", featurestore, status, body)
	}

	var metadata FeaturestoreMetadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, &errdefs.MetadataDecodeError{Featurestore: featurestore, Err: err}
	}
	if metadata.Featurestore == nil {
		return nil, &errdefs.MetadataDecodeError{Featurestore: featurestore, Err: errors.New("missing featurestore section")}
	}

	return &metadata, nil
}

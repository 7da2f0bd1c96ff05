package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrHiveNotEnabled is returned when the offline store of the deployment is not configured.
	ErrHiveNotEnabled = errors.New("hive is not enabled for this featurestore client")

	ErrOnlineFeaturestoreNotEnabled       = errors.New("online featurestore is not enabled")
	ErrOnlineFeaturestoreUserNotFound     = errors.New("could not find the online featurestore user")
	ErrOnlineFeaturestorePasswordNotFound = errors.New("could not find the online featurestore password")
)

// FeatureGroupNotFoundError is returned when no feature group matches a name and version.
type FeatureGroupNotFoundError struct {
	Name    string
	Version int
}

func (e *FeatureGroupNotFoundError) Error() string {
	return fmt.Sprintf("featuregroup not found, name:%s, version:%d", e.Name, e.Version)
}

type StorageConnectorNotFoundError struct {
	Name string
}

func (e *StorageConnectorNotFoundError) Error() string {
	return fmt.Sprintf("storage connector not found, name:%s", e.Name)
}

type FeaturestoreNotFoundError struct {
	Name string
}

func (e *FeaturestoreNotFoundError) Error() string {
	return fmt.Sprintf("featurestore not found, name:%s", e.Name)
}

// MetadataDecodeError wraps a failure to parse the metadata document of a featurestore.
type MetadataDecodeError struct {
	Featurestore string
	Err          error
}

func (e *MetadataDecodeError) Error() string {
	return fmt.Sprintf("could not decode featurestore metadata, featurestore:%s, err=%v", e.Featurestore, e.Err)
}

func (e *MetadataDecodeError) Unwrap() error {
	return e.Err
}

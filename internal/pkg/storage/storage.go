package storage

import (
	"fmt"
)

// Store is the key->bytes blob store the pipeline writes CSV artifacts to.
// Implemented by the OSS client and by LocalStore when OSS is not configured.
type Store interface {
	Put(key string, data []byte, contentType string) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	URL(key string) string
}

// URLSigner is implemented by stores whose plain URLs are not publicly
// readable. The OSS client signs against the bucket; LocalStore does not
// implement it.
type URLSigner interface {
	SignedURL(key string, expireSeconds ...int64) (string, error)
}

// TableKey is the blob key for a table CSV during extraction.
func TableKey(sessionID, tableNumber string) string {
	return fmt.Sprintf("%s/tables/table-%s.csv", sessionID, tableNumber)
}

// DatasetCSVKey is the blob key for a CSV after import into a dataset.
func DatasetCSVKey(datasetID int64, filename string) string {
	return fmt.Sprintf("%d/csv/%s", datasetID, filename)
}

// FairExportKey is the blob key for a generated FAIR template export.
func FairExportKey(datasetID int64) string {
	return fmt.Sprintf("%d/exports/fair-template.xlsx", datasetID)
}

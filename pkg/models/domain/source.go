package domain

type SourceType string

const (
	SourceTypeFile       SourceType = "file"
	SourceTypeS3         SourceType = "s3"
	SourceTypeGCS        SourceType = "gcs"
	SourceTypeAzureBlob  SourceType = "azblob"
	SourceTypeSnowflake  SourceType = "snowflake"
	SourceTypeDatabricks SourceType = "databricks"
	SourceTypeStore      SourceType = "store"
)

// StoreSourceName is the name the embedded order store is always registered under.
const StoreSourceName = "store"

// SourceProfile is a named order source with its raw settings.
type SourceProfile struct {
	Name     string
	Type     SourceType
	Settings map[string]string
}

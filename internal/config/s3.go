package config

// S3Config holds the connection settings for the artifact object store.
// The service targets any S3-compatible endpoint (MinIO in development,
// AWS in production). Artifacts are referenced from content rows by
// object key only; the API process never streams artifact bytes itself.
type S3Config struct {
    Region    string // bucket region (required by the SDK even for MinIO)
    Endpoint  string // base endpoint URL; empty means default AWS resolution
    Bucket    string // bucket holding content artifacts
    AccessKey string // static access key id
    SecretKey string // static secret access key
}

// LoadS3Config reads the S3_* environment variables. Region, bucket and
// the key pair are required; the endpoint override is optional.
func LoadS3Config() S3Config {
    return S3Config{
        Region:    must("S3_REGION"),
        Endpoint:  getenv("S3_ENDPOINT", ""),
        Bucket:    must("S3_BUCKET"),
        AccessKey: must("S3_ACCESS_KEY"),
        SecretKey: must("S3_SECRET_KEY"),
    }
}

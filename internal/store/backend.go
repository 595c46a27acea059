package store

// Backend is a bucketed key-value store for fixture artifacts. All
// operations work with raw []byte; callers choose their own encoding.
type Backend interface {
	// Bucket operations
	CreateBucket(name []byte) error
	BucketExists(name []byte) (bool, error)

	// KV operations within buckets
	Put(bucket, key, value []byte) error
	Get(bucket, key []byte) ([]byte, error)

	// ForEach iterates over all key-value pairs in a bucket
	ForEach(bucket []byte, fn func(k, v []byte) error) error

	// Lifecycle
	Close() error
}

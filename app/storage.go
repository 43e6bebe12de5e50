package app

// BlobStorage persists one opaque string per namespace.
// A missing blob is reported with ok=false and a nil error.
type BlobStorage interface {
	ReadBlob(namespace string) (data string, ok bool, err error)
	WriteBlob(namespace, data string) error
}

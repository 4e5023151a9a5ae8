package ports

// CodeRenderer produces a scannable code image for a short text payload with
// a caption overlaid. Implementations must fail on payloads that exceed the
// encoding's capacity rather than truncate.
type CodeRenderer interface {
	Render(payload, caption string) ([]byte, error)
}

// RenderJob asks a render worker to produce a code image and hand it to
// Attach. Jobs sharing a Key are processed in order.
type RenderJob struct {
	// Key shards the job to a worker: the grant token or the username.
	Key     string
	Payload string
	Caption string
	// Attach receives the PNG on success. It reports whether the image
	// was accepted; rejected images (entry gone) are dropped.
	Attach func(png []byte) bool
}

// RenderQueue enqueues render jobs for asynchronous processing.
type RenderQueue interface {
	Enqueue(job RenderJob)
}

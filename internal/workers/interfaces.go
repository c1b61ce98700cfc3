package workers

// Worker is a background job with an explicit lifecycle.
type Worker interface {
	Start() error
	Stop()
}

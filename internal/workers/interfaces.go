// Package workers runs the application's background workers in a unified
// way. A Worker is anything with a Run method; the Workers aggregate starts
// all of them together at application startup.
package workers

// Worker is implemented by background workers such as the form-session
// janitor. Run starts the worker's execution; implementations either block
// for the duration of their work or spawn goroutines internally.
type Worker interface {
	Run()
}

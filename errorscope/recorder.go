package errorscope

import "sync"

// Recorder is an in-memory Scope.
type Recorder struct {
	mu       sync.Mutex
	tags     map[string]string
	contexts map[string]map[string]interface{}
	messages []string
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		tags:     map[string]string{},
		contexts: map[string]map[string]interface{}{},
	}
}

func (r *Recorder) SetTag(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[key] = value
}

func (r *Recorder) SetContext(key string, value map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contexts[key] = value
}

func (r *Recorder) CaptureMessage(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Tag returns a recorded tag.
func (r *Recorder) Tag(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.tags[key]
	return value, ok
}

// Context returns a recorded context.
func (r *Recorder) Context(key string) (map[string]interface{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.contexts[key]
	return value, ok
}

// Messages returns captured messages.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

package domain

// ResultType classifies the outcome of a service operation.
type ResultType string

const (
	ResultSuccess  ResultType = "SUCCESS"
	ResultInvalid  ResultType = "INVALID"
	ResultNotFound ResultType = "NOT_FOUND"
)

// Result carries an outcome classification, the messages explaining it and an
// optional payload set on success.
type Result[T any] struct {
	kind     ResultType
	messages []string
	data     T
}

// NewResult returns an empty successful result.
func NewResult[T any]() *Result[T] {
	return &Result[T]{kind: ResultSuccess}
}

// IsSuccess reports whether no failure has been recorded.
func (r *Result[T]) IsSuccess() bool {
	return r.Type() == ResultSuccess
}

// Type returns the current classification.
func (r *Result[T]) Type() ResultType {
	if r.kind == "" {
		return ResultSuccess
	}
	return r.kind
}

// Messages returns a copy of the recorded messages in insertion order.
func (r *Result[T]) Messages() []string {
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// AddMessage appends msg. A non-success kind marks the result failed; once failed
// the first failure classification is kept.
func (r *Result[T]) AddMessage(msg string, kind ResultType) {
	r.messages = append(r.messages, msg)
	if kind == ResultSuccess || kind == "" {
		return
	}
	if r.IsSuccess() {
		r.kind = kind
	}
}

// Data returns the payload.
func (r *Result[T]) Data() T {
	return r.data
}

// SetData stores the payload.
func (r *Result[T]) SetData(data T) {
	r.data = data
}

package validation

// PermissionsKey is the reserved error slot used to distinguish
// authorization failures from structural ones. Callers map a non-empty
// permissions bucket to 401 and everything else to 400.
const PermissionsKey = "permissions"

// Errors maps field names to ordered, human-readable messages. It is the
// wire shape of every failed validation.
type Errors map[string][]string

// Add appends messages to a field's error slot. Empty message lists are
// ignored so merged results omit fields that were individually valid.
func (e Errors) Add(field string, messages ...string) {
	if len(messages) == 0 {
		return
	}
	e[field] = append(e[field], messages...)
}

// Merge copies every failing slot of other into e.
func (e Errors) Merge(other Errors) {
	for field, messages := range other {
		e.Add(field, messages...)
	}
}

// HasPermissionErrors reports whether the permissions bucket is non-empty.
func (e Errors) HasPermissionErrors() bool {
	return len(e[PermissionsKey]) > 0
}

// Empty reports whether no field carries an error.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Flatten collapses the field map into a bare message list. Collection
// reads report errors this way because they target no single field.
func (e Errors) Flatten() []string {
	messages := make([]string, 0, len(e))
	for _, fieldMessages := range e {
		messages = append(messages, fieldMessages...)
	}
	return messages
}

// PermissionErrors builds an Errors value holding only a permissions slot.
func PermissionErrors(messages ...string) Errors {
	return Errors{PermissionsKey: messages}
}

// Result is the type-erased view of a Validation, used to combine
// heterogeneous results.
type Result interface {
	Ok() bool
	Messages() []string
}

// Validation is either a valid value or a structured set of field errors.
// The zero value is invalid with no errors; construct through Valid,
// Invalid or Field.
type Validation[T any] struct {
	value         T
	errors        Errors
	fieldMessages []string
	valid         bool
}

// Valid wraps an accepted value.
func Valid[T any](value T) Validation[T] {
	return Validation[T]{value: value, valid: true}
}

// Invalid wraps a structured rejection.
func Invalid[T any](errors Errors) Validation[T] {
	return Validation[T]{errors: errors}
}

// Field wraps a rejection of a single field.
func Field[T any](messages ...string) Validation[T] {
	return Validation[T]{errors: nil, valid: false, fieldMessages: messages}
}

// Ok reports whether the validation accepted its value.
func (v Validation[T]) Ok() bool {
	return v.valid
}

// Value returns the accepted value. Only meaningful when Ok.
func (v Validation[T]) Value() T {
	return v.value
}

// Errors returns the structured rejection. Only meaningful when not Ok.
func (v Validation[T]) Errors() Errors {
	return v.errors
}

// Messages returns the flat message list for single-field validations.
func (v Validation[T]) Messages() []string {
	if v.valid {
		return nil
	}
	if len(v.fieldMessages) > 0 {
		return v.fieldMessages
	}
	var out []string
	for _, msgs := range v.errors {
		out = append(out, msgs...)
	}
	return out
}

// AllValid reports whether every result accepted its value.
func AllValid(results ...Result) bool {
	for _, r := range results {
		if !r.Ok() {
			return false
		}
	}
	return true
}

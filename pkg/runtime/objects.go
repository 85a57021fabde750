package runtime

import "sync"

// ObjectValue is an immutable field map. The fields are fixed at
// construction; Set always faults.
type ObjectValue struct {
	fields map[string]Value
	order  []string
	class  string
}

// NewObject builds an immutable object from parallel name/value slices.
func NewObject(class string, names []string, values []Value) *ObjectValue {
	fields := make(map[string]Value, len(names))
	order := make([]string, 0, len(names))
	for i, name := range names {
		if _, seen := fields[name]; !seen {
			order = append(order, name)
		}
		fields[name] = values[i]
	}
	return &ObjectValue{fields: fields, order: order, class: class}
}

func (v *ObjectValue) Kind() Kind { return KindObject }

// ClassName returns the declaring class, or "" for plain literals.
func (v *ObjectValue) ClassName() string { return v.class }

func (v *ObjectValue) Get(name string) (Value, bool) {
	val, ok := v.fields[name]
	return val, ok
}

func (v *ObjectValue) Has(name string) bool {
	_, ok := v.fields[name]
	return ok
}

// FieldNames returns field names in declaration order.
func (v *ObjectValue) FieldNames() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

func (v *ObjectValue) Len() int { return len(v.fields) }

// Set faults: immutable objects never accept writes.
func (v *ObjectValue) Set(name string, _ Value) error {
	return NewFault(FaultImmutableMutation, "cannot assign field '%s' on immutable object", name)
}

// ObjectMutValue is a shared mutable field map. Every read and write
// takes the lock; the lock is never held across a nested call, so
// values are copied out before any user code runs.
type ObjectMutValue struct {
	mu      sync.Mutex
	fields  map[string]Value
	order   []string
	class   string
	methods map[string]*ClosureValue
}

// NewObjectMut builds a mutable object from parallel name/value slices.
// The methods table is shared with the defining class and must not be
// mutated after construction.
func NewObjectMut(class string, names []string, values []Value, methods map[string]*ClosureValue) *ObjectMutValue {
	fields := make(map[string]Value, len(names))
	order := make([]string, 0, len(names))
	for i, name := range names {
		if _, seen := fields[name]; !seen {
			order = append(order, name)
		}
		fields[name] = values[i]
	}
	return &ObjectMutValue{fields: fields, order: order, class: class, methods: methods}
}

func (v *ObjectMutValue) Kind() Kind { return KindObjectMut }

// ClassName returns the declaring class, or "" for plain mutable literals.
func (v *ObjectMutValue) ClassName() string { return v.class }

func (v *ObjectMutValue) Get(name string) (Value, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	val, ok := v.fields[name]
	return val, ok
}

func (v *ObjectMutValue) Has(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.fields[name]
	return ok
}

// Set writes a field, inserting it when new.
func (v *ObjectMutValue) Set(name string, value Value) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, seen := v.fields[name]; !seen {
		v.order = append(v.order, name)
	}
	v.fields[name] = value
}

// FieldNames returns field names in declaration order.
func (v *ObjectMutValue) FieldNames() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

func (v *ObjectMutValue) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.fields)
}

// Snapshot copies names and values out under a single lock acquisition.
func (v *ObjectMutValue) Snapshot() ([]string, []Value) {
	v.mu.Lock()
	defer v.mu.Unlock()
	names := make([]string, len(v.order))
	copy(names, v.order)
	values := make([]Value, len(names))
	for i, name := range names {
		values[i] = v.fields[name]
	}
	return names, values
}

// Method looks up a class method; field access does not see methods.
func (v *ObjectMutValue) Method(name string) (*ClosureValue, bool) {
	m, ok := v.methods[name]
	return m, ok
}

// Message is one mailbox entry: a message type plus payload values.
type Message struct {
	Type string
	Args []Value
}

// ActorRefValue is the sole handle to an actor: its mutable state plus
// a FIFO mailbox. Handlers run synchronously; the draining flag keeps a
// handler that sends to its own actor from re-entering the drain loop.
type ActorRefValue struct {
	Definition *ActorDefinitionValue
	Instance   *ObjectMutValue

	mu       sync.Mutex
	mailbox  []Message
	draining bool
}

func (v *ActorRefValue) Kind() Kind { return KindActorRef }

// Enqueue appends a message to the mailbox.
func (v *ActorRefValue) Enqueue(msg Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mailbox = append(v.mailbox, msg)
}

// BeginDrain marks this actor as processing. It returns false when a
// drain is already in progress higher up the call stack.
func (v *ActorRefValue) BeginDrain() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draining {
		return false
	}
	v.draining = true
	return true
}

// EndDrain clears the processing mark.
func (v *ActorRefValue) EndDrain() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draining = false
}

// Dequeue pops the oldest pending message.
func (v *ActorRefValue) Dequeue() (Message, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.mailbox) == 0 {
		return Message{}, false
	}
	msg := v.mailbox[0]
	v.mailbox = v.mailbox[1:]
	return msg, true
}

// PendingCount reports mailbox depth.
func (v *ActorRefValue) PendingCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.mailbox)
}

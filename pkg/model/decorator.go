package model

// Decorator mutates a built map model before rendering. Presets and callers
// register decorators with the orchestrator to adjust base layers, controls,
// or metadata without touching the builder.
type Decorator interface {
	Decorate(m *MapModel) error
}

// DecoratorFunc adapts a function to the Decorator interface.
type DecoratorFunc func(m *MapModel) error

// Decorate implements Decorator.
func (f DecoratorFunc) Decorate(m *MapModel) error {
	return f(m)
}

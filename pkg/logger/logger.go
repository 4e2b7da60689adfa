package logger

// Logger - минимальный контракт логгера, от которого зависят все слои приложения.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field struct {
	Key   string
	Value any
}

func NewField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Nop ничего не пишет. Используется в тестах и там, где логгер не сконфигурирован.
type Nop struct{}

func (Nop) Debug(string, ...Field) {}
func (Nop) Info(string, ...Field)  {}
func (Nop) Warn(string, ...Field)  {}
func (Nop) Error(string, ...Field) {}

func (n Nop) With(...Field) Logger { return n }

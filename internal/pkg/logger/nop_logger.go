package logger

// NopLogger 什么都不做，测试里使用
type NopLogger struct{}

func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(msg string, fields ...Field) {}

func (n *NopLogger) Info(msg string, fields ...Field) {}

func (n *NopLogger) Warn(msg string, fields ...Field) {}

func (n *NopLogger) Error(msg string, fields ...Field) {}

func (n *NopLogger) With(fields ...Field) Logger { return n }

package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger는 slog.Logger 를 감싼 타입입니다.
type Logger struct {
	*slog.Logger
}

// New는 stderr 로 출력하는 로거를 만듭니다.
func New(level slog.Level) *Logger {
	return NewLogger(level, os.Stderr)
}

// NewLogger는 주어진 writer 로 출력하는 로거를 만듭니다.
func NewLogger(level slog.Level, output io.Writer) *Logger {
	return &Logger{slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))}
}

// Discard는 아무것도 출력하지 않는 로거입니다 (테스트용).
func Discard() *Logger {
	return NewLogger(slog.LevelError+1, io.Discard)
}

// Err는 에러를 로그 속성으로 변환합니다.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

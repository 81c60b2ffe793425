package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file created under the storage directory
const FileName = "flip-alarm.log"

// Setup sends the standard logger to stderr and a rotating file in dir.
// The returned closer flushes and closes the file.
func Setup(dir string) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dir, FileName),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}

	log.SetOutput(io.MultiWriter(os.Stderr, writer))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return writer, nil
}

package commands

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// setupLogger replaces the SDK's default global logger with one owned by the
// CLI: console output on stderr so command output stays pipeable, plus an
// optional rotating file sink.
func setupLogger(debug bool, logFile string) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)

	ws := zapcore.AddSync(os.Stderr)
	if logFile != "" {
		file := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			LocalTime:  true,
		}
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(file))
	}

	zap.ReplaceGlobals(zap.New(zapcore.NewCore(enc, ws, level)))
}

package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joeshaw/envdecode"
)

type Conf struct {
	LogDir string `env:"QUIZ_LOG_DIR,default="`
}

func LogConfig() *Conf {
	configs := new(Conf)

	logDir := os.Getenv("QUIZ_LOG_DIR")
	if logDir == "" {
		if err := envdecode.Decode(configs); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
			log.Printf("failed to decode log config: %s", err)
		}
	} else {
		configs.LogDir = logDir
	}

	return configs
}

var (
	destOnce sync.Once
	dest     io.Writer
)

// logDestination resolves the shared log sink once: a file under
// QUIZ_LOG_DIR when set, stderr otherwise. Falling back to stderr on file
// errors keeps logging usable in a bare environment.
func logDestination() io.Writer {
	destOnce.Do(func() {
		dest = os.Stderr
		cfg := LogConfig()
		if cfg.LogDir == "" {
			return
		}
		if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
			log.Printf("log dir unavailable, using stderr: %s", err)
			return
		}
		f, err := os.OpenFile(filepath.Join(cfg.LogDir, "quizmcp.log"),
			os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Printf("log file unavailable, using stderr: %s", err)
			return
		}
		dest = f
	})
	return dest
}

package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log  zerolog.Logger
	once sync.Once
)

func Init() {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339
		if os.Getenv("APP_ENV") == "development" {
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			return
		}
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
}

func Info(msg string, args ...any) {
	write(log.Info(), msg, args)
}

func Warn(msg string, args ...any) {
	write(log.Warn(), msg, args)
}

func Error(msg string, args ...any) {
	write(log.Error(), msg, args)
}

// write accepts either alternating key/value pairs or a trailing list of
// values appended to the message, so both call styles in the codebase work.
func write(ev *zerolog.Event, msg string, args []any) {
	if len(args) > 0 && len(args)%2 == 0 {
		if pairs, ok := asPairs(args); ok {
			for k, v := range pairs {
				ev = ev.Interface(k, v)
			}
			ev.Msg(strings.TrimSuffix(msg, ":"))
			return
		}
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, msg)
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	ev.Msg(strings.Join(parts, " "))
}

func asPairs(args []any) (map[string]any, bool) {
	pairs := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			return nil, false
		}
		pairs[k] = args[i+1]
	}
	return pairs, true
}

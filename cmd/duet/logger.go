package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	"github.com/sarchlab/duet/core"
	slogjournal "github.com/systemd/slog-journal"
	"github.com/tebeka/atexit"
)

type logOptions struct {
	level     slog.Level
	traceFile string
	journal   bool
}

// setupLogger installs the default logger. Records go to stderr at the
// chosen level, to a JSON trace file at trace level, and to the systemd
// journal when asked for.
func setupLogger(opts logOptions) error {
	var handlers []slog.Handler

	level := new(slog.LevelVar)
	level.Set(opts.level)

	terminalHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	handlers = append(handlers, terminalHandler)

	if opts.traceFile != "" {
		f, err := os.Create(opts.traceFile)
		if err != nil {
			return err
		}

		atexit.Register(func() {
			f.Close()
		})

		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: core.LevelTrace,
		}))
	}

	if opts.journal {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = terminalHandler.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))

	return nil
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

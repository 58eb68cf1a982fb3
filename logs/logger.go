package logs

import (
	"context"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/reusee/amc/cmds"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = func() *slog.LevelVar {
	l := new(slog.LevelVar)
	// stdout carries traces and results
	l.Set(slog.LevelWarn)
	return l
}()

var toJournal = cmds.Switch("-log-journal", "send logs to the systemd journal too")

func init() {
	cmds.Define("-log-level", cmds.Func(func(name string) error {
		return level.UnmarshalText([]byte(name))
	}).Desc("minimum level of logged records"))
	cmds.Define("-v", cmds.Func(func() {
		level.Set(slog.LevelInfo)
	}).Desc("log runs and links").Alias("-log-info"))
	cmds.Define("-vv", cmds.Func(func() {
		level.Set(slog.LevelDebug)
	}).Desc("log debug records").Alias("-log-debug"))
}

type Logger = *slog.Logger

// Logger writes text records to Writer. Under a systemd service, or with
// -log-journal, records go to the journal as well.
func (Module) Logger(
	writer Writer,
) Logger {
	terminalHandler := slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			Level: level,
		},
	)

	isSystemdService := false
	cgroupPath, err := getCgroupPath()
	if err == nil {
		isSystemdService = strings.HasSuffix(
			path.Dir(cgroupPath),
			".service",
		)
	}
	if !isSystemdService && !*toJournal {
		return slog.New(&Handler{
			Handler: terminalHandler,
		})
	}

	var handlers []slog.Handler
	if !isSystemdService {
		handlers = append(handlers, terminalHandler)
	}

	// systemd journal
	journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
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
		handlers = append(handlers, terminalHandler)
	} else {
		handlers = append(handlers, journalHandler)
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
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

func getCgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	parts := strings.Split(string(content), ":")
	if len(parts) >= 3 {
		return parts[2], nil
	}
	return "", nil
}

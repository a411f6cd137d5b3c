package logger

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/fatih/color"
)

// ColorizeLevel colors the level attribute for terminal output.
//
// ColorizeLevel is for use as a [log/slog.HandlerOptions.ReplaceAttr] function.
func ColorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}

	lvl, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	var c *color.Color
	switch {
	case lvl >= slog.LevelError:
		c = color.New(color.FgRed)
	case lvl >= slog.LevelWarn:
		c = color.New(color.FgYellow)
	case lvl >= slog.LevelInfo:
		c = color.New(color.FgBlue)
	default:
		c = color.New(color.FgWhite)
	}

	return slog.String(a.Key, c.Sprint(lvl.String()))
}

// DeleteLevelAttr removes the level attribute.
func DeleteLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		return slog.Attr{}
	}

	return a
}

// DeleteMessageAttr removes the message attribute.
func DeleteMessageAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.MessageKey {
		return slog.Attr{}
	}

	return a
}

// TruncSourceAttr shortens the source attribute to the file, its parent directory and the line number.
//
// e.g., /home/dev/personachat/view/handler.go:43 => view/handler.go:43
func TruncSourceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.SourceKey {
		return a
	}

	src, ok := a.Value.Any().(*slog.Source)
	if !ok || src == nil {
		return a
	}

	dir, file := path.Split(src.File)
	return slog.String(a.Key, fmt.Sprintf("%s:%d", path.Join(path.Base(dir), file), src.Line))
}

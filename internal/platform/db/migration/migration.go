package migration

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Action はマイグレーションの操作種別です。
type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
	ActionReset   Action = "reset"
)

// ErrUnsupportedAction は未知の操作が指定された場合に返却されます。
var ErrUnsupportedAction = errors.New("migration: unsupported action")

// Status は適用済みバージョンを表します。
type Status struct {
	Version uint
	Dirty   bool
	Applied bool
}

// ParseAction は文字列を Action に変換します。
func ParseAction(raw string) (Action, error) {
	switch a := Action(raw); a {
	case ActionUp, ActionDown, ActionDrop, ActionVersion, ActionReset:
		return a, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedAction, raw)
	}
}

// SourceURL はディレクトリを file:// 形式のソース URL に変換します。
func SourceURL(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve path for %s: %w", dir, err)
	}
	return "file://" + filepath.ToSlash(absDir), nil
}

// Run は dir 内のマイグレーションを dsn に対して実行します。
func Run(action Action, dir, dsn string) (Status, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return Status{}, err
	}

	source, err := SourceURL(dir)
	if err != nil {
		return Status{}, err
	}

	m, err := migrate.New(source, dsn)
	if err != nil {
		return Status{}, fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case ActionUp:
		if err := ignoreNoChange(m.Up()); err != nil {
			return Status{}, err
		}
	case ActionDown:
		if err := ignoreNoChange(m.Down()); err != nil {
			return Status{}, err
		}
	case ActionReset:
		if err := ignoreNoChange(m.Down()); err != nil {
			return Status{}, err
		}
		if err := ignoreNoChange(m.Up()); err != nil {
			return Status{}, err
		}
	case ActionDrop:
		if err := m.Drop(); err != nil {
			return Status{}, err
		}
		return Status{}, nil
	}

	return version(m)
}

func version(m *migrate.Migrate) (Status, error) {
	v, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return Status{}, nil
		}
		return Status{}, err
	}
	return Status{Version: v, Dirty: dirty, Applied: true}, nil
}

func ignoreNoChange(err error) error {
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

package export

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData はエクスポート対象のシフトが存在しない場合に返されます。
	ErrNoData = errors.New("export: no shift data found to export")
	// ErrExport はファイル生成に失敗した場合の分類用エラーです。
	ErrExport = errors.New("export: failed to generate export file")
)

// Error はファイル生成失敗の原因を保持します。
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("Failed to generate export file: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is は ErrExport との比較を可能にします。
func (e *Error) Is(target error) bool {
	return target == ErrExport
}

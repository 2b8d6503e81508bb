package export

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	"github.com/ogurasousui/shift-scheduler/internal/core/staff"
)

const (
	// SheetName は出力するワークシート名です。
	SheetName = "值班排班表"
	// ContentType は xlsx の MIME タイプです。
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	fileNameLayout = "20060102_150405"
)

// Columns は出力列の見出しです。
var Columns = []string{"Shift ID", "Shift Date", "Staff ID", "Staff Name", "Shift Type"}

// Row はエクスポートされる 1 行です。
type Row struct {
	ShiftID   int64
	Date      string
	StaffID   int64
	StaffName string
	Type      string
}

// File は生成済みのエクスポートファイルです。
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Writer は行をスプレッドシートとして書き出します。
type Writer interface {
	Write(w io.Writer, sheet string, columns []string, rows []Row) error
}

// ShiftLister は全シフトを ID 昇順で返します。
type ShiftLister interface {
	List(ctx context.Context) ([]*shift.Shift, error)
}

// StaffLister は無効化済みを含む全スタッフを返します。
type StaffLister interface {
	ListAll(ctx context.Context) ([]*staff.Staff, error)
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// TransactionManager は読み取り専用トランザクションの抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase はエクスポートの公開インターフェースです。
type UseCase interface {
	Export(ctx context.Context) (*File, error)
}

// Service はシフト台帳をスプレッドシートに変換します。
type Service struct {
	shifts ShiftLister
	staff  StaffLister
	writer Writer
	clock  Clock
	tx     TransactionManager
}

// NewService は Service を生成します。
func NewService(shifts ShiftLister, staffLister StaffLister, writer Writer, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{shifts: shifts, staff: staffLister, writer: writer, clock: clock, tx: tx}
}

// Rows はシフトとスタッフ名から出力行を組み立てます。
func Rows(shifts []*shift.Shift, names map[int64]string) []Row {
	rows := make([]Row, 0, len(shifts))
	for _, sh := range shifts {
		rows = append(rows, Row{
			ShiftID:   sh.ID,
			Date:      sh.Date.Format(shift.DateLayout),
			StaffID:   sh.StaffID,
			StaffName: staff.DisplayName(names, sh.StaffID),
			Type:      sh.Type,
		})
	}
	return rows
}

// FileName は生成時刻からファイル名を組み立てます。
func FileName(at time.Time) string {
	return "Shift_Schedule_" + at.Format(fileNameLayout) + ".xlsx"
}

// Export は全シフトを xlsx に変換します。シフトが無い場合は ErrNoData を返します。
func (s *Service) Export(ctx context.Context) (*File, error) {
	var rows []Row
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		shifts, err := s.shifts.List(txCtx)
		if err != nil {
			return err
		}
		if len(shifts) == 0 {
			return ErrNoData
		}

		members, err := s.staff.ListAll(txCtx)
		if err != nil {
			return err
		}
		rows = Rows(shifts, staff.NameIndex(members))
		return nil
	}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.writer.Write(&buf, SheetName, Columns, rows); err != nil {
		return nil, &Error{Err: err}
	}

	return &File{
		Name:        FileName(s.clock.Now()),
		ContentType: ContentType,
		Content:     buf.Bytes(),
	}, nil
}

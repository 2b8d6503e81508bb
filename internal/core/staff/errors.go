package staff

import "errors"

var (
	// ErrStaffNotFound はスタッフが存在しない場合に返却されます。
	ErrStaffNotFound = errors.New("staff: not found")
	// ErrInvalidID はIDが不正な場合に返却されます。
	ErrInvalidID = errors.New("staff: invalid id")
	// ErrInvalidName は名前が空の場合に返却されます。
	ErrInvalidName = errors.New("staff: invalid name")
	// ErrInvalidAge は年齢が MinAge 未満の場合に返却されます。
	ErrInvalidAge = errors.New("staff: age must be at least 18")
	// ErrInvalidPosition は役職が空の場合に返却されます。
	ErrInvalidPosition = errors.New("staff: invalid position")
)

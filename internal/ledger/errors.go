package ledger

import "errors"

// ErrorKind различает причины отказа в операциях учёта.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidRequest
	KindNoRentalFound
	KindNoActiveRental
	KindQuantityMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid request"
	case KindNoRentalFound:
		return "no rental found"
	case KindNoActiveRental:
		return "no active rental"
	case KindQuantityMismatch:
		return "quantity mismatch"
	}
	return "unknown"
}

// RentalError описывает отказ в аренде или возврате с человекочитаемым сообщением.
type RentalError struct {
	Kind ErrorKind
	Msg  string
}

func (e *RentalError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

// Is сопоставляет ошибки по виду, чтобы errors.Is(err, ErrQuantityMismatch) срабатывал для любого сообщения.
func (e *RentalError) Is(target error) bool {
	t, ok := target.(*RentalError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	// ErrInvalidRequest возвращается при неположительном или превышающем остаток количестве машин.
	ErrInvalidRequest = &RentalError{Kind: KindInvalidRequest}
	// ErrNoRentalFound возвращается, если у клиента нет ни одной аренды.
	ErrNoRentalFound = &RentalError{Kind: KindNoRentalFound}
	// ErrNoActiveRental возвращается, если все аренды клиента уже закрыты.
	ErrNoActiveRental = &RentalError{Kind: KindNoActiveRental}
	// ErrQuantityMismatch возвращается, если возвращается не то количество машин, что было взято.
	ErrQuantityMismatch = &RentalError{Kind: KindQuantityMismatch}
)

// KindOf возвращает вид ошибки учёта или KindUnknown для прочих ошибок.
func KindOf(err error) ErrorKind {
	var re *RentalError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

func newError(kind ErrorKind, msg string) error {
	return &RentalError{Kind: kind, Msg: msg}
}

package domain

// Session is passed explicitly to every cart operation.
type Session struct {
	ID        string
	Principal Principal
}

type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashInfo    FlashLevel = "info"
	FlashWarning FlashLevel = "warning"
	FlashError   FlashLevel = "error"
)

type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

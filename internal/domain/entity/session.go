package entity

import "slices"

// Session хранит измерения одного пользователя между сообщениями.
type Session struct {
	UserID      int64
	Colors      *ColorBalanceResult
	Diagnostics *Diagnostics
	Focus       *MetricResult
	Light       *MetricResult
	Lens        *LensCalibration
	LensErr     error
	Chessboards [][]byte
}

// NewSession создаёт пустую сессию.
func NewSession(userID int64) *Session {
	return &Session{UserID: userID}
}

// Clone возвращает копию сессии со своим списком кадров.
// Результаты измерений после записи не меняются, поэтому указатели на них общие.
func (s *Session) Clone() *Session {
	c := *s
	c.Chessboards = slices.Clone(s.Chessboards)
	return &c
}


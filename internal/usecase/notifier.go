package usecase

// 通知の種類（トーストのsuccess/error相当）
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// 画面に一時的に出す通知
type Notification struct {
	Level Level
	Text  string
}

// 通知を出す側（画面）が実装する
type Notifier interface {
	Notify(n Notification)
}

// 関数をそのままNotifierにする
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

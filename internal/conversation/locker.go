package conversation

import "sync"

// userLocker выдаёт мьютекс на пользователя, чтобы ходы одного клиента не перемешивались
type userLocker struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocker() *userLocker {
	return &userLocker{locks: make(map[int64]*userLock)}
}

// Lock блокирует пользователя и возвращает функцию разблокировки
func (l *userLocker) Lock(telegramID int64) func() {
	l.mu.Lock()
	lock, ok := l.locks[telegramID]
	if !ok {
		lock = &userLock{}
		l.locks[telegramID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, telegramID)
		}
		l.mu.Unlock()
	}
}

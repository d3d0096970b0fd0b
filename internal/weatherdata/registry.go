// internal/weatherdata/registry.go
package weatherdata

import (
	"sync"

	"github.com/Slade66/weather-station/internal/observer"
)

// registry 是有序的观察者列表，按注册顺序保存，允许重复注册。
// 比较使用接口值的 ==，指针类型的观察者按地址比较；
// 动态类型不可比较的观察者（比如 map、切片）不能被移除。
type registry[T comparable] struct {
	mu        sync.Mutex
	observers []T
}

func (r *registry[T]) add(o T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// remove 只移除第一个匹配项，找不到时返回 observer.ErrObserverNotFound
func (r *registry[T]) remove(o T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, v := range r.observers {
		if v == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return nil
		}
	}
	return observer.ErrObserverNotFound
}

// snapshot 返回当前列表的副本，广播期间不持有锁，
// 这样观察者在 Update 里移除自己也不会影响本轮其它观察者
func (r *registry[T]) snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.observers))
	copy(out, r.observers)
	return out
}

func (r *registry[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.observers)
}

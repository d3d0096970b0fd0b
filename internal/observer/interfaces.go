// internal/observer/interfaces.go
package observer

import "errors"

// ErrObserverNotFound 在移除一个未注册的观察者时返回
var ErrObserverNotFound = errors.New("observer not registered")

// Observer 推模式观察者接口，通知时直接携带三项测量值
type Observer interface {
	Update(temperature, humidity, pressure float64)
}

// Subject 推模式被观察者（主题）接口
type Subject interface {
	RegisterObserver(o Observer)
	RemoveObserver(o Observer) error
	NotifyObservers()
}

// PullObserver 拉模式观察者接口，通知不带参数，
// 观察者需要在 Update 中自己从主题读取当前值
type PullObserver interface {
	Update()
}

// PullSubject 拉模式被观察者（主题）接口
type PullSubject interface {
	RegisterObserver(o PullObserver)
	RemoveObserver(o PullObserver) error
	NotifyObservers()

	Temperature() float64
	Humidity() float64
	Pressure() float64
}

// DisplayElement 负责把观察者当前保存的状态渲染出来
type DisplayElement interface {
	Display()
}

package weatherdata

import (
	"errors"
	"testing"

	"github.com/Slade66/weather-station/internal/observer"
	"github.com/Slade66/weather-station/pkg/reading"
	"github.com/google/uuid"
)

type callLog struct {
	names []string
}

type recordingObserver struct {
	name string
	log  *callLog
	got  []reading.Measurement
}

func (r *recordingObserver) Update(temperature, humidity, pressure float64) {
	r.log.names = append(r.log.names, r.name)
	r.got = append(r.got, reading.Measurement{Temperature: temperature, Humidity: humidity, Pressure: pressure})
}

type panickingObserver struct{}

func (panickingObserver) Update(float64, float64, float64) {
	panic("display failed")
}

type selfRemovingObserver struct {
	subject *WeatherData
	log     *callLog
	err     error
}

func (s *selfRemovingObserver) Update(float64, float64, float64) {
	s.log.names = append(s.log.names, "self")
	s.err = s.subject.RemoveObserver(s)
}

func newRecorders(log *callLog, names ...string) []*recordingObserver {
	out := make([]*recordingObserver, 0, len(names))
	for _, n := range names {
		out = append(out, &recordingObserver{name: n, log: log})
	}
	return out
}

func equalNames(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("notified %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("notified %v, want %v", got, want)
		}
	}
}

func TestNotifyObserversRegistrationOrder(t *testing.T) {
	wd := New()
	log := &callLog{}
	for _, o := range newRecorders(log, "a", "b", "c", "d") {
		wd.RegisterObserver(o)
	}

	wd.NotifyObservers()

	equalNames(t, log.names, []string{"a", "b", "c", "d"})
}

func TestPushObserverReceivesLatestMeasurement(t *testing.T) {
	wd := New()
	log := &callLog{}
	o := &recordingObserver{name: "a", log: log}
	wd.RegisterObserver(o)

	wd.SetMeasurements(1, 2, 3)
	wd.SetMeasurements(80, 24, 12)
	wd.NotifyObservers()

	if len(o.got) != 1 {
		t.Fatalf("got %d notifications, want 1", len(o.got))
	}
	want := reading.Measurement{Temperature: 80, Humidity: 24, Pressure: 12}
	if o.got[0] != want {
		t.Errorf("got %+v, want %+v", o.got[0], want)
	}
}

func TestSetMeasurementsDoesNotBroadcast(t *testing.T) {
	wd := New()
	log := &callLog{}
	wd.RegisterObserver(&recordingObserver{name: "a", log: log})

	wd.SetMeasurements(-300, 1e9, -1)

	if len(log.names) != 0 {
		t.Fatalf("SetMeasurements notified %v", log.names)
	}
	want := reading.Measurement{Temperature: -300, Humidity: 1e9, Pressure: -1}
	if got := wd.Measurement(); got != want {
		t.Errorf("Measurement() = %+v, want %+v", got, want)
	}
}

func TestRemoveObserver(t *testing.T) {
	wd := New()
	log := &callLog{}
	obs := newRecorders(log, "a", "b", "c")
	for _, o := range obs {
		wd.RegisterObserver(o)
	}

	if err := wd.RemoveObserver(obs[1]); err != nil {
		t.Fatalf("RemoveObserver() error = %v", err)
	}
	wd.NotifyObservers()

	equalNames(t, log.names, []string{"a", "c"})
}

func TestRemoveObserverNotFound(t *testing.T) {
	wd := New()
	log := &callLog{}
	registered := &recordingObserver{name: "a", log: log}
	stranger := &recordingObserver{name: "a", log: log}
	wd.RegisterObserver(registered)

	err := wd.RemoveObserver(stranger)
	if !errors.Is(err, observer.ErrObserverNotFound) {
		t.Fatalf("RemoveObserver() error = %v, want ErrObserverNotFound", err)
	}
	if wd.Len() != 1 {
		t.Fatalf("Len() = %d after failed remove, want 1", wd.Len())
	}

	wd.NotifyObservers()
	if len(registered.got) != 1 {
		t.Errorf("registered observer notified %d times, want 1", len(registered.got))
	}
}

func TestRemoveObserverFromEmptySubject(t *testing.T) {
	wd := New()
	if err := wd.RemoveObserver(&recordingObserver{log: &callLog{}}); !errors.Is(err, observer.ErrObserverNotFound) {
		t.Fatalf("RemoveObserver() error = %v, want ErrObserverNotFound", err)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	wd := New()
	log := &callLog{}
	a := &recordingObserver{name: "a", log: log}
	b := &recordingObserver{name: "b", log: log}
	wd.RegisterObserver(a)
	wd.RegisterObserver(b)
	wd.RegisterObserver(a)

	wd.NotifyObservers()
	equalNames(t, log.names, []string{"a", "b", "a"})

	// 只移除第一个匹配项
	if err := wd.RemoveObserver(a); err != nil {
		t.Fatalf("RemoveObserver() error = %v", err)
	}
	log.names = nil
	wd.NotifyObservers()
	equalNames(t, log.names, []string{"b", "a"})
}

func TestMeasurementsChangedIsNotifyObservers(t *testing.T) {
	run := func(broadcast func(*WeatherData)) ([]string, []reading.Measurement) {
		wd := New()
		log := &callLog{}
		obs := newRecorders(log, "a", "b")
		for _, o := range obs {
			wd.RegisterObserver(o)
		}
		wd.RegisterObserver(obs[0])
		wd.SetMeasurements(56, 53, 13)
		broadcast(wd)
		return log.names, obs[0].got
	}

	notifyNames, notifyGot := run((*WeatherData).NotifyObservers)
	changedNames, changedGot := run((*WeatherData).MeasurementsChanged)

	equalNames(t, changedNames, notifyNames)
	if len(notifyGot) != len(changedGot) {
		t.Fatalf("got %d vs %d deliveries", len(notifyGot), len(changedGot))
	}
	for i := range notifyGot {
		if notifyGot[i] != changedGot[i] {
			t.Errorf("delivery %d: %+v vs %+v", i, notifyGot[i], changedGot[i])
		}
	}
}

func TestPanickingObserverAbortsBroadcast(t *testing.T) {
	wd := New()
	log := &callLog{}
	obs := newRecorders(log, "before", "after")
	wd.RegisterObserver(obs[0])
	wd.RegisterObserver(panickingObserver{})
	wd.RegisterObserver(obs[1])

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("NotifyObservers() did not propagate the observer panic")
			}
		}()
		wd.NotifyObservers()
	}()

	equalNames(t, log.names, []string{"before"})
	if wd.Len() != 3 {
		t.Errorf("Len() = %d, want 3", wd.Len())
	}
}

func TestObserverRemovingItselfDuringBroadcast(t *testing.T) {
	wd := New()
	log := &callLog{}
	obs := newRecorders(log, "a", "b")
	self := &selfRemovingObserver{subject: wd, log: log}
	wd.RegisterObserver(obs[0])
	wd.RegisterObserver(self)
	wd.RegisterObserver(obs[1])

	wd.NotifyObservers()
	equalNames(t, log.names, []string{"a", "self", "b"})
	if self.err != nil {
		t.Fatalf("self removal error = %v", self.err)
	}

	log.names = nil
	wd.NotifyObservers()
	equalNames(t, log.names, []string{"a", "b"})
}

func TestNewWithID(t *testing.T) {
	id := uuid.New()
	if got := NewWithID(id).ID(); got != id {
		t.Errorf("ID() = %s, want %s", got, id)
	}
	if New().ID() == uuid.Nil {
		t.Error("New() produced a nil station ID")
	}
}

type registeringObserver struct {
	subject *WeatherData
	late    observer.Observer
	log     *callLog
}

func (r *registeringObserver) Update(float64, float64, float64) {
	r.log.names = append(r.log.names, "registrar")
	r.subject.RegisterObserver(r.late)
}

func TestRegistrationDuringBroadcastNotSeen(t *testing.T) {
	wd := New()
	log := &callLog{}
	late := &recordingObserver{name: "late", log: log}
	wd.RegisterObserver(&registeringObserver{subject: wd, late: late, log: log})

	wd.NotifyObservers()
	equalNames(t, log.names, []string{"registrar"})

	log.names = nil
	wd.NotifyObservers()
	equalNames(t, log.names, []string{"registrar", "late"})
	if wd.Len() != 3 {
		t.Errorf("Len() = %d, want 3", wd.Len())
	}
}

type mutatingObserver struct {
	subject *WeatherData
}

func (m *mutatingObserver) Update(float64, float64, float64) {
	m.subject.SetMeasurements(-1, -1, -1)
}

func TestSetMeasurementsDuringBroadcastKeepsTriple(t *testing.T) {
	wd := New()
	log := &callLog{}
	before := &recordingObserver{name: "before", log: log}
	after := &recordingObserver{name: "after", log: log}
	wd.RegisterObserver(before)
	wd.RegisterObserver(&mutatingObserver{subject: wd})
	wd.RegisterObserver(after)

	wd.SetMeasurements(80, 24, 12)
	wd.NotifyObservers()

	want := reading.Measurement{Temperature: 80, Humidity: 24, Pressure: 12}
	if len(after.got) != 1 || after.got[0] != want {
		t.Errorf("later observer got %+v, want [%+v]", after.got, want)
	}
	if got := wd.Measurement(); got != (reading.Measurement{Temperature: -1, Humidity: -1, Pressure: -1}) {
		t.Errorf("Measurement() = %+v, want the value set inside the handler", got)
	}
}

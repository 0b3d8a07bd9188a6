package devices

import (
	"testing"

	"github.com/pkg/errors"
)

var errBroken = errors.New("broken")

type testDevice struct {
	id       ID
	fail     bool
	started  int
	shutdown int
}

func (d *testDevice) ID() ID { return d.id }

func (d *testDevice) Startup() error {
	d.started++
	if d.fail {
		return errBroken
	}
	return nil
}

func (d *testDevice) Shutdown() error {
	d.shutdown++
	if d.fail {
		return errBroken
	}
	return nil
}

type testKeypad struct{ testDevice }

func (k *testKeypad) Key() (byte, bool) { return 0xa, true }

func TestConnect(t *testing.T) {
	var dm Map

	if !dm.Connect(&testDevice{id: NewID(1, 1)}) {
		t.Fatalf("expected first device to connect")
	}

	if dm.Connect(&testDevice{id: NewID(1, 1)}) {
		t.Fatalf("expected duplicate device to be rejected")
	}

	if !dm.Connect(&testDevice{id: NewID(1, 2)}) {
		t.Fatalf("expected second device to connect")
	}

	if have := dm.Find(NewID(1, 2)); have != 1 {
		t.Fatalf("Find: want 1; have %d", have)
	}

	if have := dm.Find(NewID(2, 2)); have != -1 {
		t.Fatalf("Find: want -1; have %d", have)
	}
}

func TestStartupShutdown(t *testing.T) {
	good := &testDevice{id: NewID(1, 1)}
	bad := &testDevice{id: NewID(1, 2), fail: true}
	dm := Map{good, bad}

	err := dm.Startup()
	if err == nil {
		t.Fatalf("expected startup error")
	}

	var set ErrorSet
	if !errors.As(err, &set) || set.Len() != 1 {
		t.Fatalf("expected an ErrorSet with one entry; have %v", err)
	}

	if !errors.Is(err, errBroken) {
		t.Fatalf("expected error to wrap errBroken; have %v", err)
	}

	if good.started != 1 || bad.started != 1 {
		t.Fatalf("expected every device to be started once")
	}

	bad.fail = false
	if err := dm.Shutdown(); err != nil {
		t.Fatalf("Shutdown failure: %v", err)
	}

	if good.shutdown != 1 || bad.shutdown != 1 {
		t.Fatalf("expected every device to be shut down once")
	}
}

func TestCapabilities(t *testing.T) {
	dm := Map{&testDevice{id: NewID(1, 1)}}

	if _, ok := dm.Keypad(); ok {
		t.Fatalf("unexpected keypad")
	}

	dm.Connect(&testKeypad{testDevice{id: NewID(1, 2)}})

	kp, ok := dm.Keypad()
	if !ok {
		t.Fatalf("expected keypad")
	}

	if key, ok := kp.Key(); !ok || key != 0xa {
		t.Fatalf("Key: want a, true; have %x, %v", key, ok)
	}

	if _, ok := dm.Random(); ok {
		t.Fatalf("unexpected random source")
	}
}

func TestID(t *testing.T) {
	id := BuiltinID(SerialKeypad)

	if id.Manufacturer() != Builtin || id.Serial() != SerialKeypad {
		t.Fatalf("unexpected id components: %s", id)
	}

	if have := id.String(); have != "fffe:0003" {
		t.Fatalf("String: want fffe:0003; have %s", have)
	}
}
